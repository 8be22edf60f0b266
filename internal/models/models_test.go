package models

import (
	"errors"
	"testing"
)

func TestNormalizeReviewerName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Joe", "Joe"},
		{"Joe%20Bloggs", "Joe Bloggs"},
		{"A%20B%20C", "A B C"},
		{"Joe Bloggs", "Joe Bloggs"},
		{"%2", "%2"},
	}

	for _, tt := range tests {
		if got := NormalizeReviewerName(tt.in); got != tt.want {
			t.Errorf("NormalizeReviewerName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMovieID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"1234", 1234, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"12.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMovieID(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMovieID(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMovieID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
			if err != nil {
				var pe *ParamError
				if !errors.As(err, &pe) || pe.Param != "movieId" {
					t.Errorf("expected ParamError for movieId, got %v", err)
				}
			}
		})
	}
}

func TestParseOptionalIntParam(t *testing.T) {
	v, err := ParseOptionalIntParam("year", "")
	if err != nil || v != nil {
		t.Fatalf("empty value should yield nil, got %v, %v", v, err)
	}

	v, err = ParseOptionalIntParam("year", "2024")
	if err != nil || v == nil || *v != 2024 {
		t.Fatalf("expected 2024, got %v, %v", v, err)
	}

	if _, err := ParseOptionalIntParam("minRating", "high"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestMovieReviewValidate(t *testing.T) {
	valid := MovieReview{
		MovieID:      1234,
		ReviewerName: "Joe Bloggs",
		ReviewDate:   "2023-10-20",
		Content:      "A great movie",
		Rating:       8,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *MovieReview)
		field  string
	}{
		{"missing movie id", func(r *MovieReview) { r.MovieID = 0 }, "movieId"},
		{"missing reviewer", func(r *MovieReview) { r.ReviewerName = "" }, "reviewerName"},
		{"bad date", func(r *MovieReview) { r.ReviewDate = "20/10/2023" }, "reviewDate"},
		{"rating too high", func(r *MovieReview) { r.Rating = 11 }, "rating"},
		{"negative rating", func(r *MovieReview) { r.Rating = -1 }, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verrs[0].Field)
			}
		})
	}
}

func TestReviewFilter(t *testing.T) {
	reviews := []*MovieReview{
		{MovieID: 1, ReviewerName: "a", ReviewDate: "2023-01-05", Rating: 3},
		{MovieID: 1, ReviewerName: "b", ReviewDate: "2024-02-10", Rating: 7},
		{MovieID: 1, ReviewerName: "c", ReviewDate: "2024-06-01", Rating: 9},
		{MovieID: 1, ReviewerName: "d", ReviewDate: "not-a-date", Rating: 10},
	}

	minRating := 5
	year := 2024
	wrongYear := 1999

	tests := []struct {
		name   string
		filter ReviewFilter
		want   []string
	}{
		{"no filter", ReviewFilter{}, []string{"a", "b", "c", "d"}},
		{"min rating", ReviewFilter{MinRating: &minRating}, []string{"b", "c", "d"}},
		{"year", ReviewFilter{Year: &year}, []string{"b", "c"}},
		{"both", ReviewFilter{MinRating: &minRating, Year: &year}, []string{"b", "c"}},
		{"no match", ReviewFilter{Year: &wrongYear}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(reviews)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d reviews, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.ReviewerName != tt.want[i] {
					t.Errorf("position %d: got %s, want %s", i, r.ReviewerName, tt.want[i])
				}
			}
		})
	}
}

func TestDecodeReviewUpdateRequest(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		req, err := DecodeReviewUpdateRequest([]byte(`{"movieId":1234,"reviewerName":"Joe Bloggs","reviewDate":"2024-01-01","content":"Better on rewatch","rating":0}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !req.MatchesKey(ReviewKey{MovieID: 1234, ReviewerName: "Joe Bloggs"}) {
			t.Error("expected body key to match")
		}
		if req.Update.Rating == nil || *req.Update.Rating != 0 {
			t.Error("a zero rating must be kept")
		}
		if got := req.Update.Fields(); len(got) != 3 {
			t.Errorf("expected 3 fields, got %v", got)
		}
	})

	t.Run("mistyped fields ignored", func(t *testing.T) {
		req, err := DecodeReviewUpdateRequest([]byte(`{"movieId":"1234","reviewerName":"Joe","content":"","rating":"9","reviewDate":5}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.MovieID != nil {
			t.Error("string movieId should be ignored")
		}
		if !req.Update.IsEmpty() {
			t.Errorf("expected empty update, got fields %v", req.Update.Fields())
		}
	})

	t.Run("missing body", func(t *testing.T) {
		if _, err := DecodeReviewUpdateRequest(nil); !errors.Is(err, ErrMissingBody) {
			t.Errorf("expected ErrMissingBody, got %v", err)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		if _, err := DecodeReviewUpdateRequest([]byte(`[1,2]`)); !errors.Is(err, ErrInvalidBody) {
			t.Errorf("expected ErrInvalidBody, got %v", err)
		}
	})
}

func TestReviewUpdateValidate(t *testing.T) {
	badDate := "yesterday"
	high := 42.0
	ok := 7.5

	if err := (ReviewUpdate{Rating: &ok}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (ReviewUpdate{ReviewDate: &badDate}).Validate(); err == nil {
		t.Error("expected invalid date to fail")
	}
	if err := (ReviewUpdate{Rating: &high}).Validate(); err == nil {
		t.Error("expected out of range rating to fail")
	}
}

func TestReviewDateRuleMatchesForAddAndUpdate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2023-10-20", true},
		{"2020-01-01T00:00:00Z", false},
		{"20-10-2023", false},
		{"2023-13-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date := tt.date
			review := &MovieReview{MovieID: 1, ReviewerName: "Ann", ReviewDate: date, Content: "ok", Rating: 5}

			addErr := review.Validate()
			updateErr := ReviewUpdate{ReviewDate: &date}.Validate()

			if (addErr == nil) != tt.valid {
				t.Errorf("MovieReview.Validate() = %v, want valid=%v", addErr, tt.valid)
			}
			if (updateErr == nil) != tt.valid {
				t.Errorf("ReviewUpdate.Validate() = %v, want valid=%v", updateErr, tt.valid)
			}
		})
	}
}

func TestDecodeReviews(t *testing.T) {
	single, err := DecodeReviews([]byte(`{"movieId":1,"reviewerName":"a","reviewDate":"2024-01-01","content":"x","rating":5}`))
	if err != nil || len(single) != 1 {
		t.Fatalf("single object: got %d, %v", len(single), err)
	}

	many, err := DecodeReviews([]byte(` [{"movieId":1,"reviewerName":"a"},{"movieId":1,"reviewerName":"b"}]`))
	if err != nil || len(many) != 2 {
		t.Fatalf("array: got %d, %v", len(many), err)
	}

	if _, err := DecodeReviews([]byte("  ")); !errors.Is(err, ErrMissingBody) {
		t.Errorf("expected ErrMissingBody, got %v", err)
	}
}
