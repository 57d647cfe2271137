package domain

// Envelope is the uniform success/failure wrapper returned by every source
// adapter and by the orchestrator. Failure is carried structurally in
// Success/Error rather than sniffed from map keys.
type Envelope struct {
    Success bool     `json:"success"`
    Message string   `json:"message"`
    Data    *Payload `json:"data,omitempty"`
    Error   string   `json:"error,omitempty"`
}

type Payload struct {
    Items any `json:"items"`
    Meta  any `json:"meta"`
}

// Meta carries pagination counters for a source envelope. Total counts items
// after filtering but before slicing; Returned equals len(items).
type Meta struct {
    Total    int `json:"total"`
    Limit    int `json:"limit"`
    Offset   int `json:"offset"`
    Returned int `json:"returned"`
}

// TotalCount is promoted through embedding so summary extraction can read
// totals from any meta variant without knowing its concrete type.
func (m Meta) TotalCount() int { return m.Total }

// CommitMeta adds the date-filter echo to Meta. Since/Until are ISO-8601 or
// null; Period is null when no relative period was requested.
type CommitMeta struct {
    Meta
    Period *string `json:"period"`
    Since  *string `json:"since"`
    Until  *string `json:"until"`
}

// PageMeta is the orchestrator's top-level meta.
type PageMeta struct {
    Limit  int `json:"limit"`
    Offset int `json:"offset"`
}

func OK(message string, items, meta any) Envelope {
    if items == nil { items = []any{} }
    return Envelope{Success: true, Message: message, Data: &Payload{Items: items, Meta: meta}}
}

func Fail(message, errText string) Envelope {
    return Envelope{Success: false, Message: message, Error: errText}
}

// EnvelopeTotal reads data.meta.total from an envelope, degrading to zero on
// any missing or malformed level.
func EnvelopeTotal(e Envelope) int {
    if e.Data == nil { return 0 }
    if tc, ok := e.Data.Meta.(interface{ TotalCount() int }); ok { return tc.TotalCount() }
    return 0
}
