package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

const maxMultipartMemory = 10 << 20

var numericFormFields = map[string]bool{
	"fees":            true,
	"experienceYears": true,
}

func BuildCreateDoctorRequest(r *http.Request) (*requests.CreateDoctor, error) {
	request := new(requests.CreateDoctor)
	picture, pictureName, err := decodeDoctorBody(r, request)
	if err != nil {
		return nil, err
	}
	request.PictureFile = picture
	request.PictureFileName = pictureName
	return request, nil
}

func BuildUpdateDoctorRequest(r *http.Request) (*requests.UpdateDoctor, error) {
	request := new(requests.UpdateDoctor)
	picture, pictureName, err := decodeDoctorBody(r, request)
	if err != nil {
		return nil, err
	}
	request.PictureFile = picture
	request.PictureFileName = pictureName
	return request, nil
}

// decodeDoctorBody accepts a JSON body or a multipart form whose schedule field
// carries a JSON encoded string, and decodes either into target.
func decodeDoctorBody(r *http.Request, target interface{}) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	if mediaType != constvars.MIMEMultipartForm {
		if err := json.NewDecoder(r.Body).Decode(target); err != nil {
			return nil, "", exceptions.ErrCannotParseJSON(err)
		}
		return nil, "", nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, "", exceptions.ErrCannotParseMultipartForm(err)
	}

	fields := make(map[string]interface{}, len(r.MultipartForm.Value))
	for name, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch {
		case name == constvars.FormFieldSchedule:
			if !json.Valid([]byte(value)) {
				return nil, "", exceptions.ErrCannotParseSchedule(nil)
			}
			fields[name] = json.RawMessage(value)
		case numericFormFields[name]:
			number, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, "", exceptions.ErrCannotParseMultipartForm(err)
			}
			fields[name] = number
		default:
			fields[name] = value
		}
	}

	encoded, err := json.Marshal(fields)
	if err != nil {
		return nil, "", exceptions.ErrCannotMarshalJSON(err)
	}
	if err := json.Unmarshal(encoded, target); err != nil {
		return nil, "", exceptions.ErrCannotParseSchedule(err)
	}

	file, fileHeader, err := r.FormFile(constvars.FormFieldPicture)
	if err != nil {
		return nil, "", nil
	}
	defer file.Close()

	picture, err := io.ReadAll(file)
	if err != nil {
		return nil, "", exceptions.ErrCannotParseMultipartForm(err)
	}
	return picture, fileHeader.Filename, nil
}
