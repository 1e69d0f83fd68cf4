package brief

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// CreateBriefInput holds the parameters for creating a brief.
type CreateBriefInput struct {
	Header  string
	Content string
	Footer  *string
}

// Validate checks all fields and collects all errors.
func (i CreateBriefInput) Validate() error {
	var errs []domain.FieldError

	errs = checkRequired(errs, "header", i.Header, domain.MaxHeaderLength)
	errs = checkContent(errs, i.Content)
	if i.Footer != nil {
		errs = checkMax(errs, "footer", *i.Footer, domain.MaxFooterLength)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateBriefInput holds a partial content update.
type UpdateBriefInput struct {
	BriefID uuid.UUID
	Header  *string
	Content *string
	Footer  *string // nil = don't change; ptr("") = clear
}

// Validate checks all fields and collects all errors.
func (i UpdateBriefInput) Validate() error {
	var errs []domain.FieldError

	if i.BriefID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "brief_id", Message: "required"})
	}
	if i.Header == nil && i.Content == nil && i.Footer == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Header != nil {
		errs = checkRequired(errs, "header", *i.Header, domain.MaxHeaderLength)
	}
	if i.Content != nil {
		errs = checkContent(errs, *i.Content)
	}
	if i.Footer != nil {
		errs = checkMax(errs, "footer", *i.Footer, domain.MaxFooterLength)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ChangeStatusInput asks for a review decision on a brief.
type ChangeStatusInput struct {
	BriefID uuid.UUID
	Target  domain.BriefStatus
	Comment *string
}

// Validate checks all fields and collects all errors.
func (i ChangeStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.BriefID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "brief_id", Message: "required"})
	}
	if !i.Target.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	comment := ""
	if i.Comment != nil {
		comment = strings.TrimSpace(*i.Comment)
	}
	if i.Target == domain.BriefStatusNeedsModification && comment == "" {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "required when requesting modification"})
	}
	errs = checkMax(errs, "comment", comment, domain.MaxCommentLength)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListBriefsInput selects a page of briefs visible to the caller.
type ListBriefsInput struct {
	Scope  domain.BriefScope
	Status *domain.BriefStatus
	Page   int
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i ListBriefsInput) Validate() error {
	var errs []domain.FieldError

	if i.Scope != "" && !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "filter", Message: "must be one of all, owned, shared"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	switch {
	case i.Page < 0:
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be positive"})
	case i.Page > MaxPage:
		errs = append(errs, domain.FieldError{Field: "page", Message: fmt.Sprintf("must be at most %d", MaxPage)})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ShareInput invites an email to review a brief.
type ShareInput struct {
	BriefID uuid.UUID
	Email   string
}

// Validate checks all fields and collects all errors.
func (i ShareInput) Validate() error {
	var errs []domain.FieldError

	if i.BriefID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "brief_id", Message: "required"})
	}
	email := domain.NormalizeEmail(i.Email)
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	case !domain.IsValidEmail(email):
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddCommentInput posts a comment on a brief.
type AddCommentInput struct {
	BriefID uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i AddCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.BriefID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "brief_id", Message: "required"})
	}
	errs = checkRequired(errs, "content", i.Content, domain.MaxCommentLength)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func checkRequired(errs []domain.FieldError, field, value string, max int) []domain.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	return checkMax(errs, field, value, max)
}

// checkContent measures the body as stored: content keeps its surrounding
// whitespace, unlike header and footer.
func checkContent(errs []domain.FieldError, value string) []domain.FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if utf8.RuneCountInString(value) > domain.MaxContentLength {
		return append(errs, domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", domain.MaxContentLength)})
	}
	return errs
}

func checkMax(errs []domain.FieldError, field, value string, max int) []domain.FieldError {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("max %d characters", max)})
	}
	return errs
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
