package swagger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smartystreets/goconvey/convey"
	"go.yaml.in/yaml/v3"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Len(), convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("And it should handle /api-docs route", func() {
				req := httptest.NewRequest("GET", "/api-docs", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, redocScriptURL)
			})
		})

		convey.Convey("When registering on a chi router", func() {
			r := chi.NewRouter()
			Register(ctx, r)

			convey.Convey("Then the document is served there too", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When registering on a nil router", func() {
			convey.So(func() { Register(ctx, nil) }, convey.ShouldPanic)
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded OpenAPI document", t, func() {
		var doc struct {
			OpenAPI string                    `yaml:"openapi"`
			Paths   map[string]map[string]any `yaml:"paths"`
		}
		err := yaml.Unmarshal(OpenAPI, &doc)

		convey.Convey("Then it parses and lists every API route", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc.OpenAPI, convey.ShouldStartWith, "3.")
			convey.So(doc.Paths["/api/users"], convey.ShouldContainKey, "post")
			convey.So(doc.Paths["/api/users"], convey.ShouldContainKey, "get")
			convey.So(doc.Paths["/api/users/{_id}/exercises"], convey.ShouldContainKey, "post")
			convey.So(doc.Paths["/api/users/{_id}/logs"], convey.ShouldContainKey, "get")
		})
	})
}

func TestOpenAPIJSON(t *testing.T) {
	convey.Convey("Given the JSON rendition of the document", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		req := httptest.NewRequest("GET", "/openapi.json", http.NoBody)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/json")

		var doc map[string]any
		convey.So(json.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
		convey.So(doc["paths"], convey.ShouldContainKey, "/api/users/{_id}/logs")
	})

	convey.Convey("normalize stringifies non-string keys", t, func() {
		in := map[string]any{"responses": map[any]any{200: "ok"}, "list": []any{map[any]any{true: 1}}}
		out := normalize(in).(map[string]any)

		convey.So(out["responses"], convey.ShouldResemble, map[string]any{"200": "ok"})
		convey.So(out["list"].([]any)[0], convey.ShouldResemble, map[string]any{"true": 1})
	})
}
