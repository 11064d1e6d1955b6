package storefront

import (
	"fmt"
	"net/url"

	entity "storefront.GO/model/entity"
)

// ComposeInquiry returns the fixed-template inquiry text for a product.
func ComposeInquiry(p entity.Product) string {
	return fmt.Sprintf("Hi! I'm interested in %s (%s). Is it available?", p.Name, p.Price)
}

// InquiryLink builds the WhatsApp deep link for a product with the fixed
// destination phone. The message is percent-encoded as the text parameter.
func InquiryLink(p entity.Product, phone string) string {
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", ComposeInquiry(p))
	return "https://api.whatsapp.com/send?" + q.Encode()
}

// LinkOpener opens a URL in a new browsing context. The presentation layer
// supplies the implementation (an HTTP redirect, a headless stub in tests).
type LinkOpener interface {
	Open(url string) error
}

// Inquire composes the deep link for a product and opens it.
func Inquire(p entity.Product, phone string, opener LinkOpener) error {
	return opener.Open(InquiryLink(p, phone))
}
