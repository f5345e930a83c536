package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iscottycodes/contentcontest/config"
	"github.com/iscottycodes/contentcontest/internal/auth"
	"github.com/iscottycodes/contentcontest/internal/database"
	"github.com/iscottycodes/contentcontest/internal/storage"
	"github.com/iscottycodes/contentcontest/internal/token"
	"github.com/iscottycodes/contentcontest/internal/web/templates"
	"github.com/iscottycodes/contentcontest/pkg/derive"
	"github.com/iscottycodes/contentcontest/pkg/models"
)

// Authenticator is the slice of the auth service the web layer needs.
// Injected explicitly so the route guard is testable without the hosted
// service.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	VerifySession(ctx context.Context, cookie string) (*auth.Identity, error)
	SignOut(ctx context.Context, uid string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *database.DB
	uploader  *storage.Uploader
	cfg       *config.Config
	auth      Authenticator
	tokens    *token.Service
	templates map[string]*template.Template
}

// New creates a new handler with parsed templates.
func New(db *database.DB, uploader *storage.Uploader, cfg *config.Config, authSvc Authenticator, tokens *token.Service) *Handler {
	tmplMap := make(map[string]*template.Template)

	// Collect shared templates: base.html + all partials.
	shared := []string{"base.html"}
	partials, err := fs.Glob(templates.FS, "partials/*.html")
	if err != nil {
		log.Fatalf("Error globbing partials: %v", err)
	}
	shared = append(shared, partials...)

	for _, page := range []string{
		"home.html", "contest.html", "submit.html", "sponsors.html",
		"blog_list.html", "blog_post.html", "volunteer.html", "contact.html",
		"admin_login.html", "admin_dashboard.html", "admin_submissions.html",
		"admin_sponsors.html", "admin_volunteers.html", "admin_blog.html",
		"admin_contests.html", "admin_settings.html",
	} {
		files := make([]string, 0, len(shared)+1)
		files = append(files, shared...)
		files = append(files, page)

		tmplMap[page] = template.Must(
			template.New(page).ParseFS(templates.FS, files...),
		)
	}

	return &Handler{
		db:        db,
		uploader:  uploader,
		cfg:       cfg,
		auth:      authSvc,
		tokens:    tokens,
		templates: tmplMap,
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		log.Printf("Template not found: %s", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
	}
}

// Home renders the public landing page with the current contest week and
// active sponsors.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.db.ListActiveSponsors(r.Context())
	if err != nil {
		log.Printf("Error listing active sponsors: %v", err)
	}

	h.renderTemplate(w, "home.html", map[string]interface{}{
		"Title":    "Home",
		"Week":     derive.CurrentWeek(),
		"Sponsors": sponsors,
	})
}

// ContestPage renders the current contest's rules, prizes, and dates.
func (h *Handler) ContestPage(w http.ResponseWriter, r *http.Request) {
	contests, err := h.db.ListContests(r.Context(), models.ContestOpen)
	if err != nil {
		log.Printf("Error listing open contests: %v", err)
		http.Error(w, "Unable to load contest information.", http.StatusInternalServerError)
		return
	}

	var current *models.Contest
	if len(contests) > 0 {
		current = &contests[0]
	}

	h.renderTemplate(w, "contest.html", map[string]interface{}{
		"Title":   "This Week's Contest",
		"Contest": current,
		"Week":    derive.CurrentWeek(),
	})
}

// SubmitPage renders the submission form.
func (h *Handler) SubmitPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "submit.html", map[string]interface{}{
		"Title": "Submit Your Entry",
		"Week":  derive.CurrentWeek(),
	})
}

func (h *Handler) submitError(w http.ResponseWriter, msg string) {
	h.renderTemplate(w, "submit.html", map[string]interface{}{
		"Title": "Submit Your Entry",
		"Week":  derive.CurrentWeek(),
		"Error": msg,
	})
}

// SubmitPost handles the public submission form: validates the entry,
// uploads the file, then creates the submission document. The two writes
// are not atomic; if the document write fails the uploaded object is
// removed again so no orphaned file is left behind.
func (h *Handler) SubmitPost(w http.ResponseWriter, r *http.Request) {
	// 32 MiB in-memory buffer; larger parts spill to temp files.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("Error parsing submission form: %v", err)
		h.submitError(w, "Invalid form data.")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	author := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	postalCode := strings.ToUpper(strings.ReplaceAll(r.FormValue("postalCode"), " ", ""))
	contentType := models.ContentType(r.FormValue("contentType"))
	description := strings.TrimSpace(r.FormValue("description"))

	if title == "" || author == "" || email == "" {
		h.submitError(w, "Name, email, and title are required.")
		return
	}
	if !contentType.Valid() {
		h.submitError(w, "Please choose a content type.")
		return
	}

	sub := &models.Submission{
		Title:       title,
		Author:      author,
		Email:       email,
		PostalCode:  postalCode,
		Type:        contentType,
		Description: description,
		Week:        derive.CurrentWeek(),
	}

	// Pre-allocate an ID so the file can be placed before the document
	// exists.
	tempID := uuid.New().String()
	var uploadedPath string

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		if !storage.ValidateFileSize(header.Size, contentType.MaxSizeMB()) {
			h.submitError(w, fmt.Sprintf("File size exceeds %dMB limit.", contentType.MaxSizeMB()))
			return
		}
		mimeType := header.Header.Get("Content-Type")
		if !storage.ValidateFileType(mimeType, contentType.AllowedMIMEPrefixes()) {
			h.submitError(w, "This file type is not accepted for the selected category.")
			return
		}

		uploadedPath = storage.SubmissionPath(tempID, header.Filename)
		fileURL, err := h.uploader.Upload(r.Context(), file, header.Size, uploadedPath, mimeType, nil)
		if err != nil {
			log.Printf("Submission upload failed: %v", err)
			h.submitError(w, "Failed to upload your file. Please try again or email us directly.")
			return
		}
		sub.FileURL = fileURL
		sub.FileName = header.Filename
	}

	if _, err := h.db.AddSubmission(r.Context(), sub); err != nil {
		log.Printf("Submission create failed: %v", err)
		// Compensate: remove the already-uploaded file.
		if uploadedPath != "" {
			if derr := h.uploader.Delete(r.Context(), uploadedPath); derr != nil {
				log.Printf("Compensating delete failed for %s: %v", uploadedPath, derr)
			}
		}
		h.submitError(w, "Failed to submit entry. Please try again or email us directly.")
		return
	}

	h.renderTemplate(w, "submit.html", map[string]interface{}{
		"Title":     "Entry Submitted",
		"Week":      derive.CurrentWeek(),
		"Submitted": true,
	})
}

// Sponsors renders the public sponsor listing grouped by tier.
func (h *Handler) Sponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.db.ListActiveSponsors(r.Context())
	if err != nil {
		log.Printf("Error listing sponsors: %v", err)
		http.Error(w, "Unable to load sponsors.", http.StatusInternalServerError)
		return
	}

	byTier := map[models.SponsorTier][]models.Sponsor{}
	for _, s := range sponsors {
		byTier[s.Tier] = append(byTier[s.Tier], s)
	}

	h.renderTemplate(w, "sponsors.html", map[string]interface{}{
		"Title":  "Our Sponsors",
		"Gold":   byTier[models.TierGold],
		"Silver": byTier[models.TierSilver],
		"Bronze": byTier[models.TierBronze],
	})
}

// blogEntry pairs a post with its derived read-time for display.
type blogEntry struct {
	models.BlogPost
	ReadTime string
}

// BlogList renders published posts for a category (contest or personal).
func (h *Handler) BlogList(w http.ResponseWriter, r *http.Request) {
	postType := models.BlogType(chi.URLParam(r, "type"))
	if !postType.Valid() {
		http.NotFound(w, r)
		return
	}

	posts, err := h.db.ListBlogPosts(r.Context(), postType, true)
	if err != nil {
		log.Printf("Error listing blog posts: %v", err)
		http.Error(w, "Unable to load posts.", http.StatusInternalServerError)
		return
	}

	entries := make([]blogEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, blogEntry{BlogPost: p, ReadTime: derive.ReadTime(p.Content)})
	}

	h.renderTemplate(w, "blog_list.html", map[string]interface{}{
		"Title": "Blog",
		"Type":  postType,
		"Posts": entries,
	})
}

// BlogPostView renders a single post and bumps its view counter.
func (h *Handler) BlogPostView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.db.GetBlogPost(r.Context(), id)
	if err != nil {
		log.Printf("Error fetching blog post %s: %v", id, err)
		http.Error(w, "Unable to load post.", http.StatusInternalServerError)
		return
	}
	if post == nil || post.Status != models.BlogPublished {
		http.NotFound(w, r)
		return
	}

	if err := h.db.IncrementBlogViews(r.Context(), id); err != nil {
		// A missed count is not worth failing the page.
		log.Printf("Error incrementing views for %s: %v", id, err)
	}

	h.renderTemplate(w, "blog_post.html", map[string]interface{}{
		"Title":    post.Title,
		"Post":     post,
		"ReadTime": derive.ReadTime(post.Content),
	})
}

// VolunteerPage renders the volunteer signup form.
func (h *Handler) VolunteerPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "volunteer.html", map[string]interface{}{
		"Title": "Volunteer With Us",
	})
}

func (h *Handler) volunteerError(w http.ResponseWriter, msg string) {
	h.renderTemplate(w, "volunteer.html", map[string]interface{}{
		"Title": "Volunteer With Us",
		"Error": msg,
	})
}

// VolunteerPost handles the volunteer application form.
func (h *Handler) VolunteerPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing volunteer form: %v", err)
		h.volunteerError(w, "Invalid form data.")
		return
	}

	vol := &models.Volunteer{
		FirstName:       strings.TrimSpace(r.FormValue("firstName")),
		LastName:        strings.TrimSpace(r.FormValue("lastName")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Phone:           strings.TrimSpace(r.FormValue("phone")),
		City:            strings.TrimSpace(r.FormValue("city")),
		Age:             r.FormValue("age"),
		Occupation:      strings.TrimSpace(r.FormValue("occupation")),
		Interests:       r.Form["interests"],
		Availability:    r.Form["availability"],
		CommitmentLevel: r.FormValue("commitmentLevel"),
		Experience:      strings.TrimSpace(r.FormValue("experience")),
		Skills:          strings.TrimSpace(r.FormValue("skills")),
		Motivation:      strings.TrimSpace(r.FormValue("motivation")),
		HasVehicle:      r.FormValue("hasVehicle"),
		ReferralSource:  r.FormValue("referralSource"),
	}

	if vol.FirstName == "" || vol.LastName == "" || vol.Email == "" || vol.Phone == "" {
		h.volunteerError(w, "Name, email, and phone number are required.")
		return
	}
	if vol.Motivation == "" {
		h.volunteerError(w, "Please tell us why you want to volunteer.")
		return
	}

	if _, err := h.db.AddVolunteer(r.Context(), vol); err != nil {
		log.Printf("Volunteer create failed: %v", err)
		h.volunteerError(w, "Failed to submit your application. Please try again.")
		return
	}

	h.renderTemplate(w, "volunteer.html", map[string]interface{}{
		"Title":     "Application Received",
		"Submitted": true,
	})
}

// ContactPage renders the contact form.
func (h *Handler) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "contact.html", map[string]interface{}{
		"Title": "Contact Us",
	})
}

// ContactPost handles the contact form. The hidden "website" field is a
// honeypot: humans never see it, bots fill it. A non-empty value rejects
// the message before anything touches the backend.
func (h *Handler) ContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing contact form: %v", err)
		h.renderTemplate(w, "contact.html", map[string]interface{}{
			"Title": "Contact Us",
			"Error": "Invalid form data.",
		})
		return
	}

	if r.FormValue("website") != "" {
		h.renderTemplate(w, "contact.html", map[string]interface{}{
			"Title": "Contact Us",
			"Error": "Spam detected. If this is a mistake, please email us directly.",
		})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))
	if name == "" || email == "" || message == "" {
		h.renderTemplate(w, "contact.html", map[string]interface{}{
			"Title": "Contact Us",
			"Error": "Name, email, and message are required.",
		})
		return
	}

	log.Printf("Contact message from %s <%s> (%d chars)", name, email, len(message))

	h.renderTemplate(w, "contact.html", map[string]interface{}{
		"Title":     "Message Sent",
		"Submitted": true,
	})
}
