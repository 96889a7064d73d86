package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
)

// pathID binds the {id} path parameter as a simple-style int64.
func pathID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, apperr.ValidationErr.WrapParent(err)
	}

	return id, nil
}

// decodeBody decodes the JSON request body into dst. An empty body is
// treated as an empty object.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.ValidationErr.WrapParent(err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	w.Write(body)
	return nil
}

// nullableID tells an absent field apart from an explicit null: Set is true
// whenever the key is present, and Value is nil for null.
type nullableID struct {
	Set   bool
	Value *int64
}

func (n *nullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	return json.Unmarshal(data, &n.Value)
}

func (n nullableID) null() bool {
	return n.Set && n.Value == nil
}

type affectedRowsResponse struct {
	AffectedRows int64 `json:"affected_rows"`
}

type messageResponse struct {
	Message string `json:"message"`
}
