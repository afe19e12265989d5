package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Milk", "Milk"},
		{"trims", "  Bread \n", "Bread"},
		{"drops control chars", "Wa\x00ter\x07", "Water"},
		{"keeps tabs inside", "a\tb", "a\tb"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeInput(tt.input); got != tt.want {
				t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormOrFail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader("item_name=Milk&quantity=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if resp := ParseFormOrFail(req); resp != nil {
		t.Fatal("expected valid form to parse")
	}
	if got := req.PostForm.Get("item_name"); got != "Milk" {
		t.Errorf("item_name = %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/add", strings.NewReader("a=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := ParseFormOrFail(req)
	if resp == nil {
		t.Fatal("expected malformed form to fail")
	}
	w := httptest.NewRecorder()
	resp.Write(w)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
