package zerror

// Kind classifies an error by the stage boundary that produced it.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConnection
	KindTransform
	KindPublish
	KindValidationFailed
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTransform:
		return "transform"
	case KindPublish:
		return "publish"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}
