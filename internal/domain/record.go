package domain

// RecordKind names one of the portal's record collections.
type RecordKind string

const (
	KindAnnouncement RecordKind = "announcement"
	KindUniform      RecordKind = "uniform"
	KindVehicle      RecordKind = "vehicle"
	KindPersonnel    RecordKind = "personnel"
)

// RecordKinds lists every collection in display order.
var RecordKinds = []RecordKind{KindAnnouncement, KindUniform, KindVehicle, KindPersonnel}

// Valid reports whether k is a known collection.
func (k RecordKind) Valid() bool {
	for _, known := range RecordKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseRecordKind accepts both singular and plural collection names.
func ParseRecordKind(s string) (RecordKind, bool) {
	switch s {
	case "announcement", "announcements":
		return KindAnnouncement, true
	case "uniform", "uniforms":
		return KindUniform, true
	case "vehicle", "vehicles":
		return KindVehicle, true
	case "personnel":
		return KindPersonnel, true
	}
	return "", false
}
