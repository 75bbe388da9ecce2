package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// resourceNames lists every resource the generic CLI commands accept, in
// display order.
var resourceNames = []string{
	ResourceAcademicYears,
	ResourceGrades,
	ResourceDivisions,
	ResourceFeeCategories,
	ResourceComplaints,
	ResourceAttendance,
	ResourceRoles,
	ResourceStaffWallets,
	ResourceSyllabus,
	ResourceVisions,
	ResourceSettings,
	ResourceBackups,
}

// ResourceNames returns the known resource names in display order.
func ResourceNames() []string {
	out := make([]string, len(resourceNames))
	copy(out, resourceNames)
	return out
}

// ResourceNamesString is a comma-separated list of resource names for error
// output.
func ResourceNamesString() string {
	return strings.Join(resourceNames, ", ")
}

// KnownResource reports whether name is a recognized resource.
func KnownResource(name string) bool {
	for _, n := range resourceNames {
		if n == name {
			return true
		}
	}
	return false
}

// DecodeRecord unmarshals raw JSON into the concrete record struct for the
// named resource. Each resource maps to exactly one record type.
func DecodeRecord(resource string, data []byte) (any, error) {
	switch resource {
	case ResourceAcademicYears:
		return decodeAs[AcademicYear](data)
	case ResourceGrades:
		return decodeAs[Grade](data)
	case ResourceDivisions:
		return decodeAs[Division](data)
	case ResourceFeeCategories:
		return decodeAs[FeeCategory](data)
	case ResourceComplaints:
		return decodeAs[Complaint](data)
	case ResourceAttendance:
		return decodeAs[AttendanceRecord](data)
	case ResourceRoles:
		return decodeAs[Role](data)
	case ResourceStaffWallets:
		return decodeAs[StaffWallet](data)
	case ResourceSyllabus:
		return decodeAs[SyllabusEntry](data)
	case ResourceVisions:
		return decodeAs[Vision](data)
	case ResourceSettings:
		return decodeAs[Setting](data)
	case ResourceBackups:
		return decodeAs[Backup](data)
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrResourceUnknown, resource, ResourceNamesString())
	}
}

func decodeAs[T any](data []byte) (*T, error) {
	e := new(T)
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return e, nil
}

// DecodePage decodes every raw item of a fetched page into the concrete
// record type for the named resource.
func DecodePage[T any](page *ListPage[json.RawMessage]) (*ListPage[T], error) {
	out := &ListPage[T]{
		Items: make([]T, len(page.Items)),
		Total: page.Total,
	}
	for i, raw := range page.Items {
		if err := json.Unmarshal(raw, &out.Items[i]); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidData, i, err)
		}
	}
	return out, nil
}
