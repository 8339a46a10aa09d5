package lambda

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/phambaophuc/image-delivery/internal/services/uploads"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type, X-Api-Key",
}

func jsonResponse(status int, payload interface{}, extra map[string]string) events.APIGatewayV2HTTPResponse {
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range extra {
		headers[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte(`{"error":"Internal server error"}`)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

// decodeRequestBody undoes the gateway's base64 transport encoding before
// parsing the JSON body.
func decodeRequestBody(req events.APIGatewayV2HTTPRequest, v interface{}) error {
	body := []byte(req.Body)
	if req.IsBase64Encoded && req.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return &uploads.InputError{Message: uploads.MsgInvalidBody}
		}
		body = decoded
	}
	return uploads.DecodeBody(body, v)
}

// header looks name up case-insensitively. Payload v2 lowercases header names
// but local test events often do not.
func header(headers map[string]string, name string) string {
	if v, ok := headers[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
