package partner

import (
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// LeadStatus tracks a sales lead through the funnel
type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new lead"
	LeadStatusHot           LeadStatus = "hot lead"
	LeadStatusSaleClosed    LeadStatus = "sale closed"
	LeadStatusNotInterested LeadStatus = "not interested"
)

var leadStatuses = []LeadStatus{LeadStatusNew, LeadStatusHot, LeadStatusSaleClosed, LeadStatusNotInterested}

// ParseLeadStatus parses a lead status, defaulting to "new lead"
func ParseLeadStatus(s string) (LeadStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LeadStatusNew, nil
	}
	for _, st := range leadStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", shared.Validation("unknown lead status %q", s)
}

// Lead is a prospective customer
type Lead struct {
	shared.BaseEntity
	Name       string
	Email      string
	Phone      string
	AltPhone   string
	Address    string
	Notes      string
	Attachment string
	Status     LeadStatus
}

// LeadInput carries the writable lead fields
type LeadInput struct {
	Name       string
	Email      string
	Phone      string
	AltPhone   string
	Address    string
	Notes      string
	Attachment string
	Status     string
}

func NewLead(in LeadInput) (*Lead, error) {
	l := &Lead{BaseEntity: shared.NewBaseEntity()}
	if err := l.apply(in); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lead) Update(in LeadInput) error {
	if err := l.apply(in); err != nil {
		return err
	}
	l.Touch()
	return nil
}

func (l *Lead) apply(in LeadInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.Validation("lead name is required")
	}
	email, err := normalizeEmail(in.Email, false)
	if err != nil {
		return err
	}
	status, err := ParseLeadStatus(in.Status)
	if err != nil {
		return err
	}
	l.Name = name
	l.Email = email
	l.Phone = strings.TrimSpace(in.Phone)
	l.AltPhone = strings.TrimSpace(in.AltPhone)
	l.Address = strings.TrimSpace(in.Address)
	l.Notes = in.Notes
	l.Attachment = strings.TrimSpace(in.Attachment)
	l.Status = status
	return nil
}
