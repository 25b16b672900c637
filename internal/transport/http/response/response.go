package response

// ErrorBody is every non-2xx payload of the API.
type ErrorBody struct {
	Error string `json:"error"`
}

// Envelope wraps successful resource payloads.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListEnvelope is Envelope plus the number of items in Data.
type ListEnvelope[T any] struct {
	Message string `json:"message"`
	Data    []T    `json:"data"`
	Count   int    `json:"count"`
}

func Error(msg string) ErrorBody {
	if msg == "" {
		msg = "unknown error"
	}
	return ErrorBody{Error: msg}
}

func OK[T any](msg string, data T) Envelope[T] {
	return Envelope[T]{Message: msg, Data: data}
}

// List never emits a null data array.
func List[T any](msg string, items []T) ListEnvelope[T] {
	if items == nil {
		items = []T{}
	}
	return ListEnvelope[T]{Message: msg, Data: items, Count: len(items)}
}
