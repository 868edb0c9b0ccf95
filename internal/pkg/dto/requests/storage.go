package requests

type UploadFile struct {
	Data        []byte
	FileName    string
	ContentType string
	Prefix      string
	OwnerID     string
}
