package commands

// Decoder is implemented by Command, Variants and Enum.
type Decoder[T any] interface {
	Decode(message string) (T, bool)
}

type Router struct {
	routes []func(message string) (string, bool)
}

// Route registers handle for messages accepted by decoder.
// Routes are tried in registration order.
func Route[T any](router *Router, decoder Decoder[T], handle func(T) string) {
	router.routes = append(router.routes, func(message string) (string, bool) {
		value, ok := decoder.Decode(message)
		if !ok {
			return "", false
		}
		return handle(value), true
	})
}

func (r *Router) Dispatch(message string) (reply string, ok bool) {
	for _, route := range r.routes {
		if reply, ok := route(message); ok {
			return reply, true
		}
	}
	return "", false
}
