package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rohits-web03/llamastore/docs"
	"github.com/rohits-web03/llamastore/internal/api/handlers"
	"github.com/rohits-web03/llamastore/internal/api/middleware"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/config"
)

// Services are the dependencies of the HTTP layer.
type Services struct {
	Users    *services.UserService
	Llamas   *services.LlamaService
	Pictures *services.PictureService
}

// SetupRouter builds the API handler. Mutating routes exist only when
// mode.AllowWrite is set; a request for one of them otherwise gets the mux's
// 405. Authentication wraps each route so an unregistered method is reported
// before credentials are checked.
func SetupRouter(svc Services, mode config.Mode, corsOpts cors.Options, log *zap.SugaredLogger) (http.Handler, error) {
	mux := http.NewServeMux()
	auth := middleware.NewAuth(svc.Users, log)
	users := handlers.NewUserHandler(svc.Users, log)
	llamas := handlers.NewLlamaHandler(svc.Llamas, log)
	pictures := handlers.NewPictureHandler(svc.Pictures, log)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	openapi, err := openAPIHandlers()
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.serveJSON)
	mux.HandleFunc("GET /openapi.yaml", openapi.serveYAML)

	mux.HandleFunc("POST /user", users.Register)
	mux.HandleFunc("POST /token", users.CreateToken)

	// ---------- PROTECTED ROUTES ----------
	mux.Handle("GET /user/{email}", auth.RequireBearerFunc(users.GetByEmail))
	mux.Handle("GET /llama", auth.RequireBearerFunc(llamas.List))
	mux.Handle("GET /llama/{llama_id}", auth.RequireBearerFunc(llamas.Get))
	mux.Handle("GET /llama/{llama_id}/picture", auth.RequireBearerFunc(pictures.Get))

	if mode.AllowWrite {
		mux.Handle("POST /llama", auth.RequireBearerFunc(llamas.Create))
		mux.Handle("PUT /llama/{llama_id}", auth.RequireBearerFunc(llamas.Update))
		mux.Handle("DELETE /llama/{llama_id}", auth.RequireBearerFunc(llamas.Delete))
		mux.Handle("POST /llama/{llama_id}/picture", auth.RequireBearerFunc(pictures.Create))
		mux.Handle("PUT /llama/{llama_id}/picture", auth.RequireBearerFunc(pictures.Update))
		mux.Handle("DELETE /llama/{llama_id}/picture", auth.RequireBearerFunc(pictures.Delete))
	}

	if mode.Debug {
		mux.HandleFunc("GET /user", users.List)
	}

	log.Infow("router initialized", "mode", mode.String())

	var handler http.Handler = mux
	handler = cors.New(corsOpts).Handler(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Recover(log)(handler)
	handler = middleware.Logger(log)(handler)
	return handler, nil
}

type openAPI struct {
	jsonDoc []byte
	yamlDoc []byte
}

func (o openAPI) serveJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(o.jsonDoc)
}

func (o openAPI) serveYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(o.yamlDoc)
}

// openAPIHandlers renders the registered swagger document once as JSON and
// as block style YAML with the key order preserved.
func openAPIHandlers() (openAPI, error) {
	doc := []byte(docs.SwaggerInfo.ReadDoc())
	if !json.Valid(doc) {
		return openAPI{}, fmt.Errorf("openapi document is not valid JSON")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return openAPI{}, fmt.Errorf("parse openapi document: %w", err)
	}
	blockStyle(&root)
	out, err := yaml.Marshal(&root)
	if err != nil {
		return openAPI{}, fmt.Errorf("render openapi yaml: %w", err)
	}
	return openAPI{jsonDoc: doc, yamlDoc: out}, nil
}

// blockStyle drops the flow and quoting styles the JSON source gave each node.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
