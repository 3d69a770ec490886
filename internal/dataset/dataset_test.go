package dataset_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/chriscorrea/topical/internal/dataset"
	"github.com/chriscorrea/topical/internal/sample"
)

func TestWrite(t *testing.T) {
	records := []dataset.Record{
		{ID: 42, Class: sample.Grain, Terms: sample.Sample{"wheat": 3, "export": 1}},
		{ID: 7, Class: sample.Earn, Terms: sample.Sample{"profit": 2}},
	}

	var buf bytes.Buffer
	if err := dataset.Write(&buf, records); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	want := "7 earn\n" +
		"profit 2\n" +
		"\n" +
		"42 grain\n" +
		"export 1\n" +
		"wheat 3\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() output:\n%s\nexpected:\n%s", got, want)
	}
}

func TestRead(t *testing.T) {
	input := "7 earn\n" +
		"profit 2\n" +
		"net 1\n" +
		"\n" +
		"42 grain\n" +
		"wheat 3\n"

	records, err := dataset.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	want := []dataset.Record{
		{ID: 7, Class: sample.Earn, Terms: sample.Sample{"profit": 2, "net": 1}},
		{ID: 42, Class: sample.Grain, Terms: sample.Sample{"wheat": 3}},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Read() = %+v, expected %+v", records, want)
	}
}

func TestRoundTrip(t *testing.T) {
	records := []dataset.Record{
		{ID: 1, Class: sample.Acq, Terms: sample.Sample{"merger": 4, "stake": 1}},
		{ID: 2, Class: sample.MoneyFx, Terms: sample.Sample{"dollar": 2}},
		{ID: 3, Class: sample.Other, Terms: sample.Sample{}},
	}

	var buf bytes.Buffer
	if err := dataset.Write(&buf, records); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	got, err := dataset.Read(&buf)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %+v, expected %+v", got, records)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"extra field on header", "7 earn extra\n"},
		{"non-numeric id", "abc earn\n"},
		{"unknown class", "7 cocoa\n"},
		{"non-numeric count", "7 earn\nprofit two\n"},
		{"zero count", "7 earn\nprofit 0\n"},
		{"negative count", "7 earn\nprofit -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dataset.Read(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Read(%q) should return an error", tt.input)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	records, err := dataset.Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Read() of empty input = %+v, expected no records", records)
	}
}
