package partner

import (
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Vendor is a supplier that purchase orders are raised against
type Vendor struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	ABNNo   string
	Address string
}

// VendorInput carries the writable vendor fields
type VendorInput struct {
	Name    string
	Email   string
	Phone   string
	ABNNo   string
	Address string
}

func NewVendor(in VendorInput) (*Vendor, error) {
	v := &Vendor{BaseEntity: shared.NewBaseEntity()}
	if err := v.apply(in); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vendor) Update(in VendorInput) error {
	if err := v.apply(in); err != nil {
		return err
	}
	v.Touch()
	return nil
}

func (v *Vendor) apply(in VendorInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.Validation("vendor name is required")
	}
	email, err := normalizeEmail(in.Email, false)
	if err != nil {
		return err
	}
	v.Name = name
	v.Email = email
	v.Phone = strings.TrimSpace(in.Phone)
	v.ABNNo = strings.TrimSpace(in.ABNNo)
	v.Address = strings.TrimSpace(in.Address)
	return nil
}
