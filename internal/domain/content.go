package domain

import (
	"context"
	"time"
)

// Testimonial is a published customer review.
type Testimonial struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name"`
	Role      string    `bson:"role,omitempty" json:"role"`
	Content   string    `bson:"content,omitempty" json:"content"`
	Rating    int       `bson:"rating,omitempty" json:"rating"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// TeamMember is a staff profile on the about page.
type TeamMember struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Name  string `bson:"name,omitempty" json:"name"`
	Role  string `bson:"role,omitempty" json:"role"`
	Image string `bson:"image,omitempty" json:"image"`
	Bio   string `bson:"bio,omitempty" json:"bio"`
}

// Service is an informational service card.
type Service struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Title       string   `bson:"title,omitempty" json:"title"`
	Description string   `bson:"description,omitempty" json:"description"`
	Icon        string   `bson:"icon,omitempty" json:"icon"`
	Features    []string `bson:"features,omitempty" json:"features"`
	Color       string   `bson:"color,omitempty" json:"color"`
}

// Specialty is an entry in the offered specialty list; the booking form's
// specialty field must match one of these by name.
type Specialty struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name,omitempty" json:"name"`
	Icon        string `bson:"icon,omitempty" json:"icon"`
	Description string `bson:"description,omitempty" json:"description"`
}

// FAQ is a frequently-asked question entry.
type FAQ struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Question string `bson:"question,omitempty" json:"question"`
	Answer   string `bson:"answer,omitempty" json:"answer"`
	Category string `bson:"category,omitempty" json:"category"`
}

// Statistic is a display counter on the home page ("500+ trainees" etc).
type Statistic struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Value string `bson:"value,omitempty" json:"value"`
	Label string `bson:"label,omitempty" json:"label"`
	Icon  string `bson:"icon,omitempty" json:"icon"`
}

// Feature is a selling-point card on the home page.
type Feature struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Title       string `bson:"title,omitempty" json:"title"`
	Description string `bson:"description,omitempty" json:"description"`
	Icon        string `bson:"icon,omitempty" json:"icon"`
}

// SocialLink is a footer social media link.
type SocialLink struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Platform string `bson:"platform,omitempty" json:"platform"`
	URL      string `bson:"url,omitempty" json:"url"`
	Icon     string `bson:"icon,omitempty" json:"icon"`
}

// ContactMessage is a stored contact-form submission.
type ContactMessage struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone"`
	Subject   string    `bson:"subject,omitempty" json:"subject"`
	Message   string    `bson:"message,omitempty" json:"message"`
	Read      bool      `bson:"read,omitempty" json:"read"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// Repositories for the content collections. All follow the same CRUD shape;
// each collection gets its own addressable repository rather than one shared
// bag of state.

type TestimonialRepository interface {
	Create(ctx context.Context, t *Testimonial) error
	List(ctx context.Context) ([]*Testimonial, error)
	Update(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) error
}

type TeamRepository interface {
	Create(ctx context.Context, m *TeamMember) error
	List(ctx context.Context) ([]*TeamMember, error)
	Update(ctx context.Context, m *TeamMember) error
	Delete(ctx context.Context, id string) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	List(ctx context.Context) ([]*Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error
}

type SpecialtyRepository interface {
	Create(ctx context.Context, s *Specialty) error
	List(ctx context.Context) ([]*Specialty, error)
	Update(ctx context.Context, s *Specialty) error
	Delete(ctx context.Context, id string) error
}

type FAQRepository interface {
	Create(ctx context.Context, f *FAQ) error
	List(ctx context.Context) ([]*FAQ, error)
	Update(ctx context.Context, f *FAQ) error
	Delete(ctx context.Context, id string) error
}

type StatisticRepository interface {
	Create(ctx context.Context, s *Statistic) error
	List(ctx context.Context) ([]*Statistic, error)
	Update(ctx context.Context, s *Statistic) error
	Delete(ctx context.Context, id string) error
}

type FeatureRepository interface {
	Create(ctx context.Context, f *Feature) error
	List(ctx context.Context) ([]*Feature, error)
	Update(ctx context.Context, f *Feature) error
	Delete(ctx context.Context, id string) error
}

type SocialLinkRepository interface {
	Create(ctx context.Context, l *SocialLink) error
	List(ctx context.Context) ([]*SocialLink, error)
	Update(ctx context.Context, l *SocialLink) error
	Delete(ctx context.Context, id string) error
}

type ContactMessageRepository interface {
	Create(ctx context.Context, m *ContactMessage) error
	List(ctx context.Context) ([]*ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
