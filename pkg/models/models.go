// Package models defines the document shapes stored in Firestore and the
// closed status enums attached to them. Created/updated timestamps carry
// the serverTimestamp firestore option so the store assigns them; client
// values are never trusted for ordering.
package models

import "time"

// Collection names in the document store.
const (
	CollectionSubmissions = "submissions"
	CollectionSponsors    = "sponsors"
	CollectionVolunteers  = "volunteers"
	CollectionBlogPosts   = "blog_posts"
	CollectionContests    = "contests"
	CollectionSettings    = "settings"
)

// ContentType is the kind of work a submission contains.
type ContentType string

const (
	ContentPhoto   ContentType = "photo"
	ContentWriting ContentType = "writing"
	ContentVideo   ContentType = "video"
	ContentAudio   ContentType = "audio"
)

// Valid reports whether t is a member of the closed content-type set.
func (t ContentType) Valid() bool {
	switch t {
	case ContentPhoto, ContentWriting, ContentVideo, ContentAudio:
		return true
	}
	return false
}

// MaxSizeMB returns the upload size limit in megabytes for this content type.
func (t ContentType) MaxSizeMB() int64 {
	switch t {
	case ContentPhoto:
		return 10
	case ContentWriting:
		return 5
	case ContentVideo:
		return 500
	case ContentAudio:
		return 50
	}
	return 0
}

// AllowedMIMEPrefixes returns the MIME prefixes accepted for this content type.
func (t ContentType) AllowedMIMEPrefixes() []string {
	switch t {
	case ContentPhoto:
		return []string{"image/jpeg", "image/png", "image/webp"}
	case ContentWriting:
		return []string{"application/pdf", "text/plain", "application/msword", "application/vnd.openxmlformats"}
	case ContentVideo:
		return []string{"video/mp4", "video/webm"}
	case ContentAudio:
		return []string{"audio/mpeg", "audio/wav"}
	}
	return nil
}

// SubmissionStatus is the review state of a contest entry.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionReviewed SubmissionStatus = "reviewed"
	SubmissionWinner   SubmissionStatus = "winner"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Valid reports whether s is a member of the closed submission-status set.
// Any valid status may follow any other; transitions are not restricted.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionReviewed, SubmissionWinner, SubmissionRejected:
		return true
	}
	return false
}

// Submission is a contest entry created by a public visitor.
type Submission struct {
	ID          string           `json:"id" firestore:"-"`
	Title       string           `json:"title" firestore:"title"`
	Author      string           `json:"author" firestore:"author"`
	Email       string           `json:"email" firestore:"email"`
	PostalCode  string           `json:"postalCode" firestore:"postalCode"`
	Type        ContentType      `json:"type" firestore:"type"`
	Description string           `json:"description" firestore:"description"`
	FileURL     string           `json:"fileUrl,omitempty" firestore:"fileUrl"`
	FileName    string           `json:"fileName,omitempty" firestore:"fileName"`
	Status      SubmissionStatus `json:"status" firestore:"status"`
	Place       int              `json:"place,omitempty" firestore:"place"` // 1-3 when a winner, 0 otherwise
	Week        string           `json:"week" firestore:"week"`
	CreatedAt   time.Time        `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time        `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// SponsorTier is the sponsorship level used for display grouping.
type SponsorTier string

const (
	TierGold   SponsorTier = "gold"
	TierSilver SponsorTier = "silver"
	TierBronze SponsorTier = "bronze"
)

// Valid reports whether t is a member of the closed tier set.
func (t SponsorTier) Valid() bool {
	switch t {
	case TierGold, TierSilver, TierBronze:
		return true
	}
	return false
}

// SponsorStatus is the lifecycle state of a sponsorship.
type SponsorStatus string

const (
	SponsorActive   SponsorStatus = "active"
	SponsorPending  SponsorStatus = "pending"
	SponsorInactive SponsorStatus = "inactive"
)

// Valid reports whether s is a member of the closed sponsor-status set.
func (s SponsorStatus) Valid() bool {
	switch s {
	case SponsorActive, SponsorPending, SponsorInactive:
		return true
	}
	return false
}

// Sponsor is a business or individual backing the contest.
type Sponsor struct {
	ID        string        `json:"id" firestore:"-"`
	Name      string        `json:"name" firestore:"name"`
	Tier      SponsorTier   `json:"tier" firestore:"tier"`
	Contact   string        `json:"contact" firestore:"contact"`
	Email     string        `json:"email" firestore:"email"`
	Phone     string        `json:"phone,omitempty" firestore:"phone"`
	LogoURL   string        `json:"logoUrl,omitempty" firestore:"logoUrl"`
	Website   string        `json:"website,omitempty" firestore:"website"`
	Status    SponsorStatus `json:"status" firestore:"status"`
	StartDate time.Time     `json:"startDate" firestore:"startDate"`
	CreatedAt time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// VolunteerStatus is the position of an applicant in the volunteer pipeline.
type VolunteerStatus string

const (
	VolunteerNew         VolunteerStatus = "new"
	VolunteerContacted   VolunteerStatus = "contacted"
	VolunteerInterviewed VolunteerStatus = "interviewed"
	VolunteerApproved    VolunteerStatus = "approved"
	VolunteerDeclined    VolunteerStatus = "declined"
)

// Valid reports whether s is a member of the closed volunteer-status set.
func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerNew, VolunteerContacted, VolunteerInterviewed, VolunteerApproved, VolunteerDeclined:
		return true
	}
	return false
}

// Volunteer is an application submitted through the public signup form.
type Volunteer struct {
	ID              string          `json:"id" firestore:"-"`
	FirstName       string          `json:"firstName" firestore:"firstName"`
	LastName        string          `json:"lastName" firestore:"lastName"`
	Email           string          `json:"email" firestore:"email"`
	Phone           string          `json:"phone" firestore:"phone"`
	City            string          `json:"city" firestore:"city"`
	Age             string          `json:"age" firestore:"age"` // age bracket, not a number
	Occupation      string          `json:"occupation,omitempty" firestore:"occupation"`
	Interests       []string        `json:"interests" firestore:"interests"`
	Availability    []string        `json:"availability" firestore:"availability"`
	CommitmentLevel string          `json:"commitmentLevel" firestore:"commitmentLevel"`
	Experience      string          `json:"experience,omitempty" firestore:"experience"`
	Skills          string          `json:"skills,omitempty" firestore:"skills"`
	Motivation      string          `json:"motivation" firestore:"motivation"`
	HasVehicle      string          `json:"hasVehicle,omitempty" firestore:"hasVehicle"`
	ReferralSource  string          `json:"referralSource,omitempty" firestore:"referralSource"`
	Status          VolunteerStatus `json:"status" firestore:"status"`
	Notes           string          `json:"notes,omitempty" firestore:"notes"` // admin-only
	CreatedAt       time.Time       `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt       time.Time       `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// BlogType distinguishes contest announcements from personal posts.
type BlogType string

const (
	BlogContest  BlogType = "contest"
	BlogPersonal BlogType = "personal"
)

// Valid reports whether t is a member of the closed blog-type set.
func (t BlogType) Valid() bool {
	return t == BlogContest || t == BlogPersonal
}

// BlogStatus is the publication state of a post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// Valid reports whether s is a member of the closed blog-status set.
func (s BlogStatus) Valid() bool {
	return s == BlogDraft || s == BlogPublished
}

// BlogPost is an article authored through the admin dashboard.
type BlogPost struct {
	ID            string     `json:"id" firestore:"-"`
	Title         string     `json:"title" firestore:"title"`
	Slug          string     `json:"slug" firestore:"slug"`
	Content       string     `json:"content" firestore:"content"`
	Excerpt       string     `json:"excerpt,omitempty" firestore:"excerpt"`
	Type          BlogType   `json:"type" firestore:"type"`
	Status        BlogStatus `json:"status" firestore:"status"`
	FeaturedImage string     `json:"featuredImage,omitempty" firestore:"featuredImage"`
	Author        string     `json:"author" firestore:"author"`
	Views         int64      `json:"views" firestore:"views"`
	PublishedAt   time.Time  `json:"publishedAt,omitempty" firestore:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt     time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// ContestStatus is the lifecycle state of a contest period.
type ContestStatus string

const (
	ContestDraft     ContestStatus = "draft"
	ContestOpen      ContestStatus = "open"
	ContestClosed    ContestStatus = "closed"
	ContestJudging   ContestStatus = "judging"
	ContestCompleted ContestStatus = "completed"
)

// Valid reports whether s is a member of the closed contest-status set.
func (s ContestStatus) Valid() bool {
	switch s {
	case ContestDraft, ContestOpen, ContestClosed, ContestJudging, ContestCompleted:
		return true
	}
	return false
}

// Contest is a weekly contest period with its dates, prizes, and rules.
type Contest struct {
	ID           string        `json:"id" firestore:"-"`
	Title        string        `json:"title" firestore:"title"`
	Description  string        `json:"description" firestore:"description"`
	Week         string        `json:"week" firestore:"week"`
	Status       ContestStatus `json:"status" firestore:"status"`
	OpenDate     time.Time     `json:"openDate" firestore:"openDate"`
	CloseDate    time.Time     `json:"closeDate" firestore:"closeDate"`
	AnnounceDate time.Time     `json:"announceDate,omitempty" firestore:"announceDate"`
	PrizeFirst   int           `json:"prizeFirst,omitempty" firestore:"prizeFirst"`
	PrizeSecond  int           `json:"prizeSecond,omitempty" firestore:"prizeSecond"`
	PrizeThird   int           `json:"prizeThird,omitempty" firestore:"prizeThird"`
	Rules        []string      `json:"rules,omitempty" firestore:"rules"`
	CreatedAt    time.Time     `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time     `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Settings is the single site-configuration document.
type Settings struct {
	ContactEmail    string    `json:"contactEmail" firestore:"contactEmail"`
	SubmissionsOpen bool      `json:"submissionsOpen" firestore:"submissionsOpen"`
	AnnouncementDay string    `json:"announcementDay" firestore:"announcementDay"`
	UpdatedAt       time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
