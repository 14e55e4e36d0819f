package domain

import (
	"encoding/base64"
	"fmt"
)

// UploadedImage is the image the user handed to the service. It is built once
// at upload time and never mutated; flows share it by reference.
type UploadedImage struct {
	Data []byte
	MIME string
}

// DataURL renders the image as a base64 data URL for transport to the browser.
func (u *UploadedImage) DataURL() string {
	if u == nil || len(u.Data) == 0 {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", u.MIME, base64.StdEncoding.EncodeToString(u.Data))
}

// ImageAsset is a generated or edited image returned by the gateway. Assets
// are ephemeral and replaced wholesale on each successful call.
type ImageAsset struct {
	Data []byte
	MIME string
}

// DataURL renders the asset as a base64 data URL.
func (a *ImageAsset) DataURL() string {
	if a == nil || len(a.Data) == 0 {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", a.MIME, base64.StdEncoding.EncodeToString(a.Data))
}
