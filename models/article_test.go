package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestHistoryPrepend(t *testing.T) {
	original := History{{URL: "https://b.example", Summary: "b"}}
	got := original.Prepend(Article{URL: "https://a.example", Summary: "a"})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].URL != "https://a.example" || got[1].URL != "https://b.example" {
		t.Errorf("order = %v, want a then b", got)
	}
	if len(original) != 1 || original[0].URL != "https://b.example" {
		t.Errorf("Prepend modified the receiver: %v", original)
	}
}

func TestHistoryPrepend_AllowsDuplicates(t *testing.T) {
	a := Article{URL: "https://same.example", Summary: "one"}
	h := History{}.Prepend(a).Prepend(a)
	if len(h) != 2 {
		t.Errorf("len = %d, want 2 (duplicates are kept)", len(h))
	}
}

func TestOutcome(t *testing.T) {
	ok := Success("short summary")
	if s, isOK := ok.Summary(); !isOK || s != "short summary" {
		t.Errorf("Success.Summary() = %q, %v", s, isOK)
	}
	if _, failed := ok.Failure(); failed {
		t.Error("Success.Failure() reported a failure")
	}
	if ok.Err() != nil {
		t.Errorf("Success.Err() = %v, want nil", ok.Err())
	}

	bad := Failure(500, "Internal error")
	if _, isOK := bad.Summary(); isOK {
		t.Error("Failure.Summary() reported success")
	}
	fe, failed := bad.Failure()
	if !failed {
		t.Fatal("Failure.Failure() = false")
	}
	if fe.Status != 500 || fe.Message() != "Internal error" {
		t.Errorf("FetchError = %+v", fe)
	}

	var target *FetchError
	if !errors.As(bad.Err(), &target) || target.Status != 500 {
		t.Errorf("errors.As did not recover FetchError from %v", bad.Err())
	}
}

func TestFetchErrorShape(t *testing.T) {
	data, err := json.Marshal(NewFetchError(429, "Too many requests"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"data":{"error":"Too many requests"},"status":429}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
