package storefront

import (
	"net/url"
	"strings"
	"testing"

	entity "storefront.GO/model/entity"
)

func TestInquiryLink(t *testing.T) {
	p := entity.Product{ID: "p1", Name: "Phulkari Dupatta", Price: "Rs 1500"}
	link := InquiryLink(p, "919876543210")

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.whatsapp.com" || u.Path != "/send" {
		t.Errorf("link = %s", link)
	}
	q := u.Query()
	if q.Get("phone") != "919876543210" {
		t.Errorf("phone = %s", q.Get("phone"))
	}
	text := q.Get("text")
	if !strings.Contains(text, "Phulkari Dupatta") || !strings.Contains(text, "Rs 1500") {
		t.Errorf("text = %q, want product name and price", text)
	}
	// The raw query must be percent-encoded (no literal spaces).
	if strings.Contains(u.RawQuery, " ") {
		t.Error("query not percent-encoded")
	}
}

type recordingOpener struct {
	opened []string
}

func (r *recordingOpener) Open(u string) error {
	r.opened = append(r.opened, u)
	return nil
}

func TestInquire_OpensComposedLink(t *testing.T) {
	p := entity.Product{ID: "p1", Name: "Scarf", Price: "Rs 800"}
	opener := &recordingOpener{}
	if err := Inquire(p, "911234567890", opener); err != nil {
		t.Fatalf("inquire: %v", err)
	}
	if len(opener.opened) != 1 || opener.opened[0] != InquiryLink(p, "911234567890") {
		t.Errorf("opened = %v", opener.opened)
	}
}
