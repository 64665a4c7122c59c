package utils

import (
	"encoding/base64"
	"errors"
	"gandall-service/internal/pkg/constvars"
	"mime"
	"regexp"
	"strings"
)

var fhirResourceIDPattern = regexp.MustCompile(constvars.RegexFhirResourceID)

// ValidateUrlParamID checks a path parameter against the FHIR resource
// id grammar before it is forwarded to the FHIR server.
func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	if !fhirResourceIDPattern.MatchString(param) {
		return errors.New("parameter is not a valid resource id")
	}
	return nil
}

// DecodeBase64Image decodes a data-URI image payload (or bare base64
// with an explicit content type) into raw bytes plus the file extension
// used for object storage naming.
func DecodeBase64Image(encodedImage, declaredContentType string) ([]byte, string, error) {
	payload := encodedImage
	contentType := declaredContentType

	if strings.HasPrefix(encodedImage, "data:") {
		parts := strings.SplitN(encodedImage, ",", 2)
		if len(parts) != 2 {
			return nil, "", errors.New("invalid base64 image")
		}
		payload = parts[1]
		semicolon := strings.Index(parts[0], ";")
		if semicolon <= len("data:") {
			return nil, "", errors.New("invalid base64 image header")
		}
		contentType = parts[0][len("data:"):semicolon]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}

	extensions, err := mime.ExtensionsByType(contentType)
	if err != nil || len(extensions) == 0 {
		return nil, "", errors.New("invalid image type")
	}

	return data, extensions[len(extensions)-1], nil
}
