package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeEmpty(t *testing.T) {
	for _, l := range []List{nil, {}} {
		data, err := Encode(l)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Errorf("Encode(%#v): got %s, want []", l, data)
		}
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode(List{{ID: "1", Text: "Walk dog", Completed: true}})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"id":"1","text":"Walk dog","completed":true}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want List
	}{
		{"empty array", `[]`, List{}},
		{
			name: "original app value",
			data: `[{"id":"1729080000001","text":"Read book","completed":false},{"id":"1729080000000","text":"Walk dog","completed":true}]`,
			want: List{
				{ID: "1729080000001", Text: "Read book"},
				{ID: "1729080000000", Text: "Walk dog", Completed: true},
			},
		},
		{
			name: "unknown fields are tolerated",
			data: `[{"id":"1","text":"x","completed":false,"due":"tomorrow"}]`,
			want: List{{ID: "1", Text: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("decoded list must not be nil")
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string // substring expected in the error
	}{
		{"not json", `{{{`, "parse json"},
		{"truncated", `[{"id":"1","text":"x"`, "parse json"},
		{"null", `null`, ""},
		{"object instead of array", `{"tasks":[]}`, ""},
		{"missing completed", `[{"id":"1","text":"x"}]`, "completed"},
		{"completed as string", `[{"id":"1","text":"x","completed":"true"}]`, "[0].completed"},
		{"numeric id", `[{"id":1,"text":"x","completed":false}]`, "[0].id"},
		{"empty text", `[{"id":"1","text":"","completed":false}]`, "[0].text"},
		{"blank text", `[{"id":"1","text":"   ","completed":false}]`, "[0].text"},
		{"duplicate ids", `[{"id":"1","text":"a","completed":false},{"id":"1","text":"b","completed":true}]`, "[1].id"},
		{"element not object", `["walk dog"]`, "[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatalf("expected error, got %+v", l)
			}
			var ce *CorruptDataError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CorruptDataError, got %T: %v", err, err)
			}
			if len(ce.Errors) == 0 {
				t.Error("expected at least one problem")
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("expected %q in error, got %v", tt.wantPath, err)
			}
		})
	}
}

func TestDecodeReportsEveryProblem(t *testing.T) {
	data := `[{"id":"1","text":"ok","completed":false},{"id":"1","text":" ","completed":true}]`
	_, err := Decode([]byte(data))

	var ce *CorruptDataError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptDataError, got %v", err)
	}
	if len(ce.Errors) != 2 {
		t.Errorf("expected 2 problems, got %d: %v", len(ce.Errors), ce.Errors)
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Error("expected problems to unwrap to *FieldError")
	}
}
