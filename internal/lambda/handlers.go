// Package lambda exposes the delivery and object services as API Gateway
// HTTP API (payload v2) handlers.
package lambda

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/phambaophuc/image-delivery/internal/services/auth"
	"github.com/phambaophuc/image-delivery/internal/services/delivery"
	"github.com/phambaophuc/image-delivery/internal/services/uploads"
	"go.uber.org/zap"
)

const (
	HandlerImageResize  = "image-resize"
	HandlerPresignedURL = "presigned-url"
	HandlerListObjects  = "list-objects"
	HandlerDeleteObject = "delete-object"
)

type Handler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type Deliverer interface {
	Deliver(ctx context.Context, key string, params map[string]string) (*delivery.Result, error)
}

type ObjectService interface {
	Presign(ctx context.Context, req *models.PresignRequest) (*models.PresignResponse, error)
	List(ctx context.Context, q models.ListObjectsQuery) (*models.ListObjectsResponse, error)
	Delete(ctx context.Context, req *models.DeleteRequest) (*models.DeleteResponse, error)
}

type KeyValidator interface {
	Validate(ctx context.Context, apiKey string) error
}

type Adapter struct {
	delivery  Deliverer
	objects   ObjectService
	validator KeyValidator
	logger    *zap.Logger
}

func NewAdapter(delivery Deliverer, objects ObjectService, validator KeyValidator, logger *zap.Logger) *Adapter {
	return &Adapter{
		delivery:  delivery,
		objects:   objects,
		validator: validator,
		logger:    logger,
	}
}

// Handler returns the function deployed under name.
func (a *Adapter) Handler(name string) (Handler, error) {
	switch name {
	case HandlerImageResize:
		return a.ImageResize, nil
	case HandlerPresignedURL:
		return a.withAPIKey(a.PresignedURL), nil
	case HandlerListObjects:
		return a.withAPIKey(a.ListObjects), nil
	case HandlerDeleteObject:
		return a.withAPIKey(a.DeleteObject), nil
	default:
		return nil, fmt.Errorf("unknown lambda handler %q", name)
	}
}

// ImageResize serves the image delivery route. The key is the {proxy+} path
// parameter, or the raw path when the route has none.
func (a *Adapter) ImageResize(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	key := req.PathParameters["proxy"]
	if key == "" {
		key = strings.TrimPrefix(req.RawPath, "/")
	}

	result, err := a.delivery.Deliver(ctx, key, req.QueryStringParameters)
	switch {
	case errors.Is(err, delivery.ErrMissingAddress):
		return jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: models.MsgMissingAddress}, nil), nil
	case err != nil:
		return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgProcessingFailed}, nil), nil
	}

	if result.Location != "" {
		return events.APIGatewayV2HTTPResponse{
			StatusCode: result.StatusCode,
			Headers:    map[string]string{"Location": result.Location},
		}, nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: result.StatusCode,
		Headers: map[string]string{
			"Content-Type":  result.ContentType,
			"Cache-Control": result.CacheControl,
		},
		Body:            base64.StdEncoding.EncodeToString(result.Body),
		IsBase64Encoded: true,
	}, nil
}

func (a *Adapter) PresignedURL(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var body models.PresignRequest
	if err := decodeRequestBody(req, &body); err != nil {
		return a.serviceError("presign", err), nil
	}

	resp, err := a.objects.Presign(ctx, &body)
	if err != nil {
		return a.serviceError("presign", err), nil
	}
	return jsonResponse(http.StatusOK, resp, corsHeaders), nil
}

func (a *Adapter) ListObjects(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	q := req.QueryStringParameters
	resp, err := a.objects.List(ctx, models.ListObjectsQuery{
		ProjectCode: q["projectCode"],
		OwnerKey:    q["ownerKey"],
		Folder:      q["folder"],
		Limit:       q["limit"],
		Cursor:      q["cursor"],
		IncludeTags: q["includeTags"] == "true",
	})
	if err != nil {
		return a.serviceError("list", err), nil
	}
	return jsonResponse(http.StatusOK, resp, corsHeaders), nil
}

func (a *Adapter) DeleteObject(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var body models.DeleteRequest
	if err := decodeRequestBody(req, &body); err != nil {
		return a.serviceError("delete", err), nil
	}

	resp, err := a.objects.Delete(ctx, &body)
	if err != nil {
		return a.serviceError("delete", err), nil
	}
	return jsonResponse(http.StatusOK, resp, corsHeaders), nil
}

func (a *Adapter) withAPIKey(next Handler) Handler {
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		err := a.validator.Validate(ctx, header(req.Headers, "X-Api-Key"))
		if err == nil {
			return next(ctx, req)
		}

		if msg, ok := auth.RejectionMessage(err); ok {
			return jsonResponse(http.StatusForbidden, models.ErrorResponse{Error: msg}, corsHeaders), nil
		}
		a.logger.Error("API key validation failed", zap.Error(err))
		return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgInternalError}, corsHeaders), nil
	}
}

func (a *Adapter) serviceError(operation string, err error) events.APIGatewayV2HTTPResponse {
	var inputErr *uploads.InputError
	if errors.As(err, &inputErr) {
		return jsonResponse(http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Message}, corsHeaders)
	}

	a.logger.Error("Object operation failed",
		zap.String("operation", operation),
		zap.Error(err))
	return jsonResponse(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgInternalError}, corsHeaders)
}
