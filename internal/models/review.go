package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MovieReview is a reviewer's opinion of a movie, keyed by (MovieID, ReviewerName)
type MovieReview struct {
	MovieID      int     `json:"movieId" dynamodbav:"movieId" validate:"required,gt=0"`
	ReviewerName string  `json:"reviewerName" dynamodbav:"reviewerName" validate:"required"`
	ReviewDate   string  `json:"reviewDate" dynamodbav:"reviewDate" validate:"required,datetime=2006-01-02"`
	Content      string  `json:"content" dynamodbav:"content" validate:"required"`
	Rating       float64 `json:"rating" dynamodbav:"rating" validate:"gte=0,lte=10"`
}

// Validate validates the review data
func (r *MovieReview) Validate() error {
	return Validate(r)
}

// Key returns the composite primary key of the review
func (r *MovieReview) Key() ReviewKey {
	return ReviewKey{MovieID: r.MovieID, ReviewerName: r.ReviewerName}
}

// Year returns the calendar year of the review date
func (r *MovieReview) Year() (int, bool) {
	t, err := ParseDate(r.ReviewDate)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// ReviewKey identifies exactly one review
type ReviewKey struct {
	MovieID      int
	ReviewerName string
}

func (k ReviewKey) String() string {
	return fmt.Sprintf("%d/%s", k.MovieID, k.ReviewerName)
}

// Complete reports whether both key components are present
func (k ReviewKey) Complete() bool {
	return k.MovieID > 0 && k.ReviewerName != ""
}

// ReviewFilter narrows a movie's review listing. Nil fields do not filter.
type ReviewFilter struct {
	MinRating *int
	Year      *int
}

// Matches reports whether the review passes every set filter
func (f ReviewFilter) Matches(r *MovieReview) bool {
	if f.MinRating != nil && r.Rating < float64(*f.MinRating) {
		return false
	}
	if f.Year != nil {
		year, ok := r.Year()
		if !ok || year != *f.Year {
			return false
		}
	}
	return true
}

// Apply filters reviews in order: minimum rating first, then year
func (f ReviewFilter) Apply(reviews []*MovieReview) []*MovieReview {
	out := make([]*MovieReview, 0, len(reviews))
	for _, r := range reviews {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// ReviewUpdate is the set of attributes to overwrite on an existing review.
// Only non-nil fields are written.
type ReviewUpdate struct {
	ReviewDate *string  `json:"reviewDate,omitempty"`
	Content    *string  `json:"content,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

// IsEmpty reports whether the update would change nothing
func (u ReviewUpdate) IsEmpty() bool {
	return u.ReviewDate == nil && u.Content == nil && u.Rating == nil
}

// Fields returns the attribute names the update writes
func (u ReviewUpdate) Fields() []string {
	var fields []string
	if u.ReviewDate != nil {
		fields = append(fields, "reviewDate")
	}
	if u.Content != nil {
		fields = append(fields, "content")
	}
	if u.Rating != nil {
		fields = append(fields, "rating")
	}
	return fields
}

// ApplyTo copies the set fields onto r
func (u ReviewUpdate) ApplyTo(r *MovieReview) {
	if u.ReviewDate != nil {
		r.ReviewDate = *u.ReviewDate
	}
	if u.Content != nil {
		r.Content = *u.Content
	}
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
}

// Validate checks the values carried by the update
func (u ReviewUpdate) Validate() error {
	var errs ValidationErrors
	if u.ReviewDate != nil {
		if _, err := ParseDate(*u.ReviewDate); err != nil {
			errs = append(errs, FieldError{
				Field:   "reviewDate",
				Tag:     "datetime",
				Value:   *u.ReviewDate,
				Message: fmt.Sprintf("reviewDate must be a date in %s format", DateLayout),
			})
		}
	}
	if u.Rating != nil && (*u.Rating < MinRating || *u.Rating > MaxRating) {
		errs = append(errs, FieldError{
			Field:   "rating",
			Tag:     "range",
			Value:   fmt.Sprintf("%v", *u.Rating),
			Message: fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating),
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewUpdateRequest is the decoded body of an update call. MovieID and
// ReviewerName echo the target key and are nil when absent or mistyped.
type ReviewUpdateRequest struct {
	MovieID      *int
	ReviewerName *string
	Update       ReviewUpdate
}

// MatchesKey reports whether the body key equals the path key exactly
func (r *ReviewUpdateRequest) MatchesKey(key ReviewKey) bool {
	return r.MovieID != nil && r.ReviewerName != nil &&
		*r.MovieID == key.MovieID && *r.ReviewerName == key.ReviewerName
}

// DecodeReviewUpdateRequest decodes an update body. A field is picked up only
// when it carries the expected JSON type: reviewDate and content must be
// non-empty strings and rating must be a number. Anything else is ignored.
func DecodeReviewUpdateRequest(body []byte) (*ReviewUpdateRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrMissingBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, ErrInvalidBody
	}

	req := &ReviewUpdateRequest{}

	if n, ok := raw["movieId"].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			id := int(v)
			req.MovieID = &id
		}
	}
	if s, ok := raw["reviewerName"].(string); ok {
		req.ReviewerName = &s
	}
	if s, ok := raw["reviewDate"].(string); ok && strings.TrimSpace(s) != "" {
		req.Update.ReviewDate = &s
	}
	if s, ok := raw["content"].(string); ok && s != "" {
		req.Update.Content = &s
	}
	if n, ok := raw["rating"].(json.Number); ok {
		if v, err := n.Float64(); err == nil {
			req.Update.Rating = &v
		}
	}

	return req, nil
}

// DecodeReviews decodes either a single review object or an array of reviews
func DecodeReviews(body []byte) ([]*MovieReview, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrMissingBody
	}

	if trimmed[0] == '[' {
		var reviews []*MovieReview
		if err := json.Unmarshal(trimmed, &reviews); err != nil {
			return nil, fmt.Errorf("invalid review list: %w", err)
		}
		return reviews, nil
	}

	var review MovieReview
	if err := json.Unmarshal(trimmed, &review); err != nil {
		return nil, fmt.Errorf("invalid review: %w", err)
	}
	return []*MovieReview{&review}, nil
}
