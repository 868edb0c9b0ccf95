package cache

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"strings"
)

func DoctorKey(doctorID string) string {
	return constvars.CacheKeyDoctorPrefix + ":" + doctorID
}

func DoctorPartialKey(doctorID string) string {
	return strings.Join([]string{constvars.CacheKeyDoctorPartialPrefix, doctorID, constvars.CacheKeyDoctorPartialSuffix}, ":")
}

func DoctorLegacyKey(doctorID string) string {
	return constvars.CacheKeyDoctorLegacyPrefix + ":" + doctorID
}

// DoctorEntryKeys lists every per-doctor key that must go when the doctor changes.
func DoctorEntryKeys(doctorID string) []string {
	return []string{
		DoctorKey(doctorID),
		DoctorPartialKey(doctorID),
		DoctorLegacyKey(doctorID),
	}
}

// AggregateKeys lists the keys holding doctor lists.
func AggregateKeys() []string {
	return []string{
		constvars.CacheKeyDoctorList,
		constvars.CacheKeyDoctors,
	}
}

// DoctorPartialPattern matches every cached partial projection.
func DoctorPartialPattern() string {
	return constvars.CacheKeyDoctorPartialPrefix + ":*:" + constvars.CacheKeyDoctorPartialSuffix
}
