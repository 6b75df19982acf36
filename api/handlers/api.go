package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bailreckoner/bail-records-api/api"
	"github.com/bailreckoner/bail-records-api/config"
	"github.com/bailreckoner/bail-records-api/databases"
	"github.com/bailreckoner/bail-records-api/models"
	"github.com/bailreckoner/bail-records-api/uploads"
)

// App stores the router, db connection and upload resolver, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Uploads  uploads.Resolver
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	j := JudicialAuthority{DB: databases.NewJudicialAuthorityDatabase(a.dbHelper), Uploads: a.Uploads}
	l := LegalAidProvider{DB: databases.NewLegalAidProviderDatabase(a.dbHelper), Uploads: a.Uploads}
	p := PrisonAuthority{DB: databases.NewPrisonAuthorityDatabase(a.dbHelper)}
	s := SystemAdmin{DB: databases.NewSystemAdminDatabase(a.dbHelper), Uploads: a.Uploads}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", api.MetricsHandler())

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/newjudicial-authorities", http.HandlerFunc(j.CreateJudicialAuthorityHandler)).Methods("POST")
	apiCreate.Handle("/alljudicial-authorities", http.HandlerFunc(j.JudicialAuthorityHandler)).Methods("GET")
	apiCreate.Handle("/judicial-authorities/{judicial_authority_id}", http.HandlerFunc(j.JudicialAuthorityByIDHandler)).Methods("GET")
	apiCreate.Handle("/updatejudicial-authorities/{judicial_authority_id}", http.HandlerFunc(j.UpdateJudicialAuthorityHandler)).Methods("PUT")
	apiCreate.Handle("/deletejudicial-authorities/{judicial_authority_id}", http.HandlerFunc(j.DeleteJudicialAuthorityHandler)).Methods("DELETE")
	apiCreate.Handle("/judicial-authorities/{judicial_authority_id}/bail-applications", http.HandlerFunc(j.AddBailApplicationHandler)).Methods("POST")

	apiCreate.Handle("/newlegal-aid-providers", http.HandlerFunc(l.CreateLegalAidProviderHandler)).Methods("POST")
	apiCreate.Handle("/alllegal-aid-providers", http.HandlerFunc(l.LegalAidProviderHandler)).Methods("GET")
	apiCreate.Handle("/legal-aid-providersbyid/{legal_aid_provider_id}", http.HandlerFunc(l.LegalAidProviderByIDHandler)).Methods("GET")
	apiCreate.Handle("/updatelegal-aid-providers/{legal_aid_provider_id}", http.HandlerFunc(l.UpdateLegalAidProviderHandler)).Methods("PUT")
	apiCreate.Handle("/deletelegal-aid-providers/{legal_aid_provider_id}", http.HandlerFunc(l.DeleteLegalAidProviderHandler)).Methods("DELETE")
	apiCreate.Handle("/bail-application/{legal_aid_provider_id}", http.HandlerFunc(l.AddSubmittedApplicationHandler)).Methods("POST")
	apiCreate.Handle("/documents/{legal_aid_provider_id}", http.HandlerFunc(l.UploadDocumentsHandler)).Methods("POST")

	apiCreate.Handle("/newprison", http.HandlerFunc(p.CreatePrisonAuthorityHandler)).Methods("POST")
	apiCreate.Handle("/allprisons", http.HandlerFunc(p.PrisonAuthorityHandler)).Methods("GET")
	apiCreate.Handle("/prison/{prison_authority_id}", http.HandlerFunc(p.PrisonAuthorityByIDHandler)).Methods("GET")
	apiCreate.Handle("/updateprison/{prison_authority_id}", http.HandlerFunc(p.UpdatePrisonAuthorityHandler)).Methods("PUT")
	apiCreate.Handle("/deleteprison/{prison_authority_id}", http.HandlerFunc(p.DeletePrisonAuthorityHandler)).Methods("DELETE")
	apiCreate.Handle("/prison/{prison_authority_id}/prisoners", http.HandlerFunc(p.AddPrisonerDataHandler)).Methods("POST")
	apiCreate.Handle("/prison/{prison_authority_id}/release-authorizations", http.HandlerFunc(p.AddReleaseAuthorizationHandler)).Methods("POST")

	apiCreate.Handle("/newsystem-admin", http.HandlerFunc(s.CreateSystemAdminHandler)).Methods("POST")
	apiCreate.Handle("/allsystem-admins", http.HandlerFunc(s.SystemAdminHandler)).Methods("GET")
	apiCreate.Handle("/system-adminsbyid/{system_admin_id}", http.HandlerFunc(s.SystemAdminByIDHandler)).Methods("GET")
	apiCreate.Handle("/updatesystem-admins/{system_admin_id}", http.HandlerFunc(s.UpdateSystemAdminHandler)).Methods("PUT")
	apiCreate.Handle("/deletesystem-admins/{system_admin_id}", http.HandlerFunc(s.DeleteSystemAdminHandler)).Methods("DELETE")
	apiCreate.Handle("/system-admins/{system_admin_id}/tasks", http.HandlerFunc(s.AddTaskHandler)).Methods("POST")
	apiCreate.Handle("/system-admins/{system_admin_id}/technical-issues", http.HandlerFunc(s.AddTechnicalIssueHandler)).Methods("POST")

	r.Use(api.Middleware)
	r.Use(api.MetricsMiddleware)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("bail-records-api has connected to the database")

	if a.Uploads == nil {
		resolver, err := uploads.NewCloudinaryResolver(&a.Config)
		if err != nil {
			zap.S().With(err).Error("failed to create upload resolver")
			return err
		}
		a.Uploads = resolver
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
