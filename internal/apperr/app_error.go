package apperr

import "github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"

const (
	ConnectionErrorCode = "STORE_UNAVAILABLE"
	TransformErrorCode  = "MALFORMED_RECORD"
	PublishErrorCode    = "PUBLISH_FAILED"
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ConnectionErr = zerror.NewConnection(ConnectionErrorCode, "product store unreachable or query failed")
	TransformErr  = zerror.NewTransform(TransformErrorCode, "malformed product record")
	PublishErr    = zerror.NewPublish(PublishErrorCode, "report publish failed")
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
)
