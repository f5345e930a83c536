package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iscottycodes/contentcontest/internal/auth"
	"github.com/iscottycodes/contentcontest/internal/storage"
	"github.com/iscottycodes/contentcontest/pkg/derive"
	"github.com/iscottycodes/contentcontest/pkg/models"
)

// LoginPage renders the admin login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "admin_login.html", map[string]interface{}{
		"Title": "Admin Login",
	})
}

func (h *Handler) loginError(w http.ResponseWriter, msg string) {
	h.renderTemplate(w, "admin_login.html", map[string]interface{}{
		"Title": "Admin Login",
		"Error": msg,
	})
}

// Login handles the admin login form submission. Known auth service error
// codes map to inline messages; everything else gets a generic failure.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("Error parsing login form: %v", err)
		h.loginError(w, "Invalid form data.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.loginError(w, "Email and password are required.")
		return
	}

	cookie, err := h.auth.SignIn(r.Context(), email, password)
	if err != nil {
		log.Printf("Login failed for %s: %v", email, err)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUserNotFound):
			h.loginError(w, "Invalid email or password.")
		case errors.Is(err, auth.ErrTooManyAttempts):
			h.loginError(w, "Too many failed attempts. Please try again later.")
		case errors.Is(err, auth.ErrUserDisabled):
			h.loginError(w, "This account has been disabled.")
		default:
			h.loginError(w, "Something went wrong. Please try again.")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    cookie,
		Path:     "/",
		MaxAge:   h.cfg.Auth.SessionCookieMaxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout revokes the session and clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if identity, verr := h.auth.VerifySession(r.Context(), cookie.Value); verr == nil {
			if serr := h.auth.SignOut(r.Context(), identity.UID); serr != nil {
				log.Printf("Error revoking session for %s: %v", identity.UID, serr)
			}
		}
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ForgotPassword dispatches a password-reset email through the auth
// service.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.loginError(w, "Invalid form data.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		h.loginError(w, "Email is required to reset your password.")
		return
	}

	if err := h.auth.SendPasswordReset(r.Context(), email); err != nil {
		log.Printf("Password reset failed for %s: %v", email, err)
		if errors.Is(err, auth.ErrUserNotFound) {
			h.loginError(w, "No account exists for that email address.")
			return
		}
		h.loginError(w, "Unable to send reset email. Please try again.")
		return
	}

	h.renderTemplate(w, "admin_login.html", map[string]interface{}{
		"Title":  "Admin Login",
		"Notice": "Password reset email sent. Check your inbox.",
	})
}

// Dashboard renders counts for each admin queue.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	pending, err := h.db.ListSubmissions(r.Context(), models.SubmissionPending)
	if err != nil {
		log.Printf("Error counting pending submissions: %v", err)
	}
	newVolunteers, err := h.db.ListVolunteers(r.Context(), models.VolunteerNew)
	if err != nil {
		log.Printf("Error counting new volunteers: %v", err)
	}
	drafts, err := h.db.ListBlogPosts(r.Context(), "", false)
	if err != nil {
		log.Printf("Error listing blog posts: %v", err)
	}
	draftCount := 0
	for _, p := range drafts {
		if p.Status == models.BlogDraft {
			draftCount++
		}
	}

	h.renderTemplate(w, "admin_dashboard.html", map[string]interface{}{
		"Title":         "Dashboard",
		"Identity":      identity,
		"PendingCount":  len(pending),
		"NewVolunteers": len(newVolunteers),
		"DraftPosts":    draftCount,
		"Week":          derive.CurrentWeek(),
	})
}

// AdminSubmissions lists submissions, optionally filtered by status via
// the query string.
func (h *Handler) AdminSubmissions(w http.ResponseWriter, r *http.Request) {
	status := models.SubmissionStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		http.Error(w, "Unknown status filter", http.StatusBadRequest)
		return
	}

	subs, err := h.db.ListSubmissions(r.Context(), status)
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		http.Error(w, "Unable to load submissions.", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "admin_submissions.html", map[string]interface{}{
		"Title":       "Submissions",
		"Submissions": subs,
		"Filter":      string(status),
	})
}

// AdminSubmissionUpdate transitions a submission's status and optionally
// assigns a winner's place. Any valid status may follow any other; only
// membership in the closed enum is enforced.
func (h *Handler) AdminSubmissionUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	status := models.SubmissionStatus(r.FormValue("status"))
	if !status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	place := 0
	if v := r.FormValue("place"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 || p > 3 {
			http.Error(w, "Place must be 1, 2, or 3", http.StatusBadRequest)
			return
		}
		if status != models.SubmissionWinner {
			http.Error(w, "Place can only be assigned to winners", http.StatusBadRequest)
			return
		}
		place = p
	}

	if err := h.db.UpdateSubmissionStatus(r.Context(), id, status, place); err != nil {
		log.Printf("Error updating submission %s: %v", id, err)
		http.Error(w, "Unable to update submission.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/submissions", http.StatusSeeOther)
}

// AdminSponsors lists sponsors, optionally filtered by tier.
func (h *Handler) AdminSponsors(w http.ResponseWriter, r *http.Request) {
	tier := models.SponsorTier(r.URL.Query().Get("tier"))
	if tier != "" && !tier.Valid() {
		http.Error(w, "Unknown tier filter", http.StatusBadRequest)
		return
	}

	sponsors, err := h.db.ListSponsors(r.Context(), tier)
	if err != nil {
		log.Printf("Error listing sponsors: %v", err)
		http.Error(w, "Unable to load sponsors.", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "admin_sponsors.html", map[string]interface{}{
		"Title":    "Sponsors",
		"Sponsors": sponsors,
		"Filter":   string(tier),
	})
}

// AdminSponsorSave creates or updates a sponsor. A logo file, when
// present, uploads first and its public URL is stored on the record.
func (h *Handler) AdminSponsorSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	sponsor := &models.Sponsor{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Tier:    models.SponsorTier(r.FormValue("tier")),
		Contact: strings.TrimSpace(r.FormValue("contact")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Website: strings.TrimSpace(r.FormValue("website")),
		Status:  models.SponsorStatus(r.FormValue("status")),
	}

	if sponsor.Name == "" || sponsor.Contact == "" || sponsor.Email == "" {
		http.Error(w, "Name, contact, and email are required", http.StatusBadRequest)
		return
	}
	if !sponsor.Tier.Valid() {
		http.Error(w, "Unknown tier", http.StatusBadRequest)
		return
	}
	if !sponsor.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	if v := r.FormValue("startDate"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid start date", http.StatusBadRequest)
			return
		}
		sponsor.StartDate = start
	}

	id := r.FormValue("id")

	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()

		if !storage.ValidateFileSize(header.Size, 5) {
			http.Error(w, "Logo exceeds 5MB limit", http.StatusBadRequest)
			return
		}
		mimeType := header.Header.Get("Content-Type")
		if !storage.ValidateFileType(mimeType, []string{"image/"}) {
			http.Error(w, "Logo must be an image", http.StatusBadRequest)
			return
		}

		logoOwner := id
		if logoOwner == "" {
			logoOwner = "new"
		}
		logoURL, err := h.uploader.Upload(r.Context(), file, header.Size,
			storage.SponsorLogoPath(logoOwner, header.Filename), mimeType, nil)
		if err != nil {
			log.Printf("Sponsor logo upload failed: %v", err)
			http.Error(w, "Logo upload failed", http.StatusInternalServerError)
			return
		}
		sponsor.LogoURL = logoURL
	}

	if id == "" {
		if _, err := h.db.AddSponsor(r.Context(), sponsor); err != nil {
			log.Printf("Error creating sponsor: %v", err)
			http.Error(w, "Unable to save sponsor.", http.StatusInternalServerError)
			return
		}
	} else {
		if err := h.db.UpdateSponsor(r.Context(), id, sponsor); err != nil {
			log.Printf("Error updating sponsor %s: %v", id, err)
			http.Error(w, "Unable to save sponsor.", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/sponsors", http.StatusSeeOther)
}

// AdminSponsorDelete removes a sponsor permanently.
func (h *Handler) AdminSponsorDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteSponsor(r.Context(), id); err != nil {
		log.Printf("Error deleting sponsor %s: %v", id, err)
		http.Error(w, "Unable to delete sponsor.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/sponsors", http.StatusSeeOther)
}

// AdminVolunteers lists volunteer applications, optionally filtered by
// pipeline status.
func (h *Handler) AdminVolunteers(w http.ResponseWriter, r *http.Request) {
	status := models.VolunteerStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		http.Error(w, "Unknown status filter", http.StatusBadRequest)
		return
	}

	vols, err := h.db.ListVolunteers(r.Context(), status)
	if err != nil {
		log.Printf("Error listing volunteers: %v", err)
		http.Error(w, "Unable to load volunteers.", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "admin_volunteers.html", map[string]interface{}{
		"Title":      "Volunteers",
		"Volunteers": vols,
		"Filter":     string(status),
	})
}

// AdminVolunteerUpdate moves an application through the pipeline.
func (h *Handler) AdminVolunteerUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	status := models.VolunteerStatus(r.FormValue("status"))
	if !status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	// Leave notes alone unless the form posted the field.
	var notes *string
	if v, ok := r.Form["notes"]; ok && len(v) > 0 {
		trimmed := strings.TrimSpace(v[0])
		notes = &trimmed
	}

	if err := h.db.UpdateVolunteerStatus(r.Context(), id, status, notes); err != nil {
		log.Printf("Error updating volunteer %s: %v", id, err)
		http.Error(w, "Unable to update volunteer.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/volunteers", http.StatusSeeOther)
}

// AdminBlog lists all posts including drafts.
func (h *Handler) AdminBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.db.ListBlogPosts(r.Context(), "", false)
	if err != nil {
		log.Printf("Error listing blog posts: %v", err)
		http.Error(w, "Unable to load posts.", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "admin_blog.html", map[string]interface{}{
		"Title": "Blog Posts",
		"Posts": posts,
	})
}

// AdminBlogSave creates or updates a post. The slug derives from the
// title on every save; publishing a draft stamps publishedAt with the
// current time. Slugs are not checked for uniqueness.
func (h *Handler) AdminBlogSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	identity, _ := IdentityFromContext(r.Context())

	post := &models.BlogPost{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: r.FormValue("content"),
		Excerpt: strings.TrimSpace(r.FormValue("excerpt")),
		Type:    models.BlogType(r.FormValue("type")),
		Status:  models.BlogStatus(r.FormValue("status")),
		Author:  strings.TrimSpace(r.FormValue("author")),
	}
	if post.Author == "" && identity != nil {
		post.Author = identity.Email
	}

	if post.Title == "" || post.Content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}
	if !post.Type.Valid() {
		http.Error(w, "Unknown post type", http.StatusBadRequest)
		return
	}
	if !post.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	post.Slug = derive.Slugify(post.Title)

	id := r.FormValue("id")

	if file, header, err := r.FormFile("featuredImage"); err == nil {
		defer file.Close()

		mimeType := header.Header.Get("Content-Type")
		if !storage.ValidateFileType(mimeType, []string{"image/"}) {
			http.Error(w, "Featured image must be an image", http.StatusBadRequest)
			return
		}

		imageOwner := id
		if imageOwner == "" {
			imageOwner = "new"
		}
		imageURL, err := h.uploader.Upload(r.Context(), file, header.Size,
			storage.BlogImagePath(imageOwner, header.Filename), mimeType, nil)
		if err != nil {
			log.Printf("Blog image upload failed: %v", err)
			http.Error(w, "Image upload failed", http.StatusInternalServerError)
			return
		}
		post.FeaturedImage = imageURL
	}

	if post.Status == models.BlogPublished {
		if id != "" {
			existing, err := h.db.GetBlogPost(r.Context(), id)
			if err == nil && existing != nil && !existing.PublishedAt.IsZero() {
				post.PublishedAt = existing.PublishedAt
			}
		}
		if post.PublishedAt.IsZero() {
			post.PublishedAt = time.Now()
		}
	}

	if id == "" {
		if _, err := h.db.AddBlogPost(r.Context(), post); err != nil {
			log.Printf("Error creating blog post: %v", err)
			http.Error(w, "Unable to save post.", http.StatusInternalServerError)
			return
		}
	} else {
		if err := h.db.UpdateBlogPost(r.Context(), id, post); err != nil {
			log.Printf("Error updating blog post %s: %v", id, err)
			http.Error(w, "Unable to save post.", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
}

// AdminBlogDelete removes a post permanently.
func (h *Handler) AdminBlogDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteBlogPost(r.Context(), id); err != nil {
		log.Printf("Error deleting blog post %s: %v", id, err)
		http.Error(w, "Unable to delete post.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/blog", http.StatusSeeOther)
}

// AdminContests lists contests.
func (h *Handler) AdminContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.db.ListContests(r.Context(), "")
	if err != nil {
		log.Printf("Error listing contests: %v", err)
		http.Error(w, "Unable to load contests.", http.StatusInternalServerError)
		return
	}

	h.renderTemplate(w, "admin_contests.html", map[string]interface{}{
		"Title":    "Contests",
		"Contests": contests,
	})
}

// AdminContestSave creates or updates a contest. Rules arrive as a
// textarea and are split into an ordered list, blank lines dropped.
func (h *Handler) AdminContestSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	contest := &models.Contest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Week:        strings.TrimSpace(r.FormValue("week")),
		Status:      models.ContestStatus(r.FormValue("status")),
		Rules:       derive.SplitRules(r.FormValue("rules")),
	}

	if contest.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if !contest.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}
	if contest.Week == "" {
		contest.Week = derive.CurrentWeek()
	}

	openDate, err := time.Parse("2006-01-02", r.FormValue("openDate"))
	if err != nil {
		http.Error(w, "Invalid open date", http.StatusBadRequest)
		return
	}
	closeDate, err := time.Parse("2006-01-02", r.FormValue("closeDate"))
	if err != nil {
		http.Error(w, "Invalid close date", http.StatusBadRequest)
		return
	}
	contest.OpenDate = openDate
	contest.CloseDate = closeDate

	if v := r.FormValue("announceDate"); v != "" {
		announce, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid announce date", http.StatusBadRequest)
			return
		}
		contest.AnnounceDate = announce
	}

	for _, prize := range []struct {
		field string
		dst   *int
	}{
		{"prizeFirst", &contest.PrizeFirst},
		{"prizeSecond", &contest.PrizeSecond},
		{"prizeThird", &contest.PrizeThird},
	} {
		if v := r.FormValue(prize.field); v != "" {
			amount, err := strconv.Atoi(v)
			if err != nil || amount < 0 {
				http.Error(w, "Prize amounts must be non-negative numbers", http.StatusBadRequest)
				return
			}
			*prize.dst = amount
		}
	}

	id := r.FormValue("id")
	if id == "" {
		if _, err := h.db.AddContest(r.Context(), contest); err != nil {
			log.Printf("Error creating contest: %v", err)
			http.Error(w, "Unable to save contest.", http.StatusInternalServerError)
			return
		}
	} else {
		if err := h.db.UpdateContest(r.Context(), id, contest); err != nil {
			log.Printf("Error updating contest %s: %v", id, err)
			http.Error(w, "Unable to save contest.", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/admin/contests", http.StatusSeeOther)
}

// AdminContestDelete removes a contest permanently.
func (h *Handler) AdminContestDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteContest(r.Context(), id); err != nil {
		log.Printf("Error deleting contest %s: %v", id, err)
		http.Error(w, "Unable to delete contest.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/contests", http.StatusSeeOther)
}

// AdminSettings renders the site settings form.
func (h *Handler) AdminSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetSettings(r.Context())
	if err != nil {
		log.Printf("Error loading settings: %v", err)
		http.Error(w, "Unable to load settings.", http.StatusInternalServerError)
		return
	}
	if settings == nil {
		settings = &models.Settings{}
	}

	h.renderTemplate(w, "admin_settings.html", map[string]interface{}{
		"Title":    "Site Settings",
		"Settings": settings,
	})
}

// AdminSettingsSave writes the site settings document.
func (h *Handler) AdminSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	settings := &models.Settings{
		ContactEmail:    strings.TrimSpace(r.FormValue("contactEmail")),
		SubmissionsOpen: r.FormValue("submissionsOpen") == "on",
		AnnouncementDay: r.FormValue("announcementDay"),
	}

	if err := h.db.UpdateSettings(r.Context(), settings); err != nil {
		log.Printf("Error saving settings: %v", err)
		http.Error(w, "Unable to save settings.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}
