package ocr

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// NoDataText is returned when the vendor recognized no text fields.
const NoDataText = "데이터가 없습니다."

// Extraction is the flattened text of one vendor response.
type Extraction struct {
	Text string
	// Degraded is set when the body was malformed or had an unexpected shape.
	Degraded bool
	// NoData is set when Text is NoDataText.
	NoData bool
}

// ExtractText joins images[0].fields[].inferText with single spaces. It never
// fails: a body it cannot read yields an empty, degraded extraction. Only the
// first JSON value of the body is read; anything after it is ignored.
func ExtractText(log logrus.FieldLogger, body []byte) Extraction {
	var root json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&root); err != nil {
		log.WithError(err).Error("failed to extract ocr text: response is not valid JSON")
		return Extraction{Degraded: true}
	}

	images := gjson.GetBytes(root, "images")
	if !images.IsArray() || len(images.Array()) == 0 {
		log.Error("failed to extract ocr text: response has no images")
		return Extraction{Degraded: true}
	}

	fields := images.Array()[0].Get("fields")
	if !hasEntries(fields) {
		log.Warn("ocr response has no fields")
		return Extraction{Text: NoDataText, NoData: true}
	}

	var text strings.Builder
	fields.ForEach(func(_, field gjson.Result) bool {
		text.WriteString(scalarString(field.Get("inferText")))
		text.WriteString(" ")
		return true
	})
	return Extraction{Text: strings.TrimSpace(text.String())}
}

func hasEntries(r gjson.Result) bool {
	if !r.IsArray() && !r.IsObject() {
		return false
	}
	found := false
	r.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}

// scalarString renders a field value as text. An explicit JSON null becomes
// "null"; a missing value, an object or an array become "".
func scalarString(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	case gjson.Null:
		if r.Exists() {
			return "null"
		}
		return ""
	default:
		return ""
	}
}
