package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/appointment"
	"github.com/profbkmurage/physiocare/internal/blog"
	"github.com/profbkmurage/physiocare/internal/clinic"
	"github.com/profbkmurage/physiocare/internal/identity"
	"github.com/profbkmurage/physiocare/internal/testimonial"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type CompleteResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type BookAppointmentRequest struct {
	PatientName string `json:"patient_name"`
	WhatsApp    string `json:"whatsapp"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Service     string `json:"service"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type ProposeRescheduleRequest struct {
	SuggestedDate string `json:"suggested_date"`
	SuggestedTime string `json:"suggested_time"`
}

type ApproveRequest struct {
	Comment string `json:"comment,omitempty"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	PatientName   string    `json:"patient_name"`
	WhatsApp      string    `json:"whatsapp"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Service       string    `json:"service"`
	DoctorName    string    `json:"doctor_name"`
	Status        string    `json:"status"`
	SuggestedDate *string   `json:"suggested_date,omitempty"`
	SuggestedTime *string   `json:"suggested_time,omitempty"`
	PreviousDate  *string   `json:"previous_date,omitempty"`
	PreviousTime  *string   `json:"previous_time,omitempty"`
	AdminComment  *string   `json:"admin_comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		PatientName:   a.PatientName,
		WhatsApp:      a.WhatsApp,
		Date:          a.Date,
		Time:          a.Time,
		Service:       a.Service,
		DoctorName:    a.DoctorName,
		Status:        string(a.Status),
		SuggestedDate: a.SuggestedDate,
		SuggestedTime: a.SuggestedTime,
		PreviousDate:  a.PreviousDate,
		PreviousTime:  a.PreviousTime,
		AdminComment:  a.AdminComment,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toAppointmentList(in []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(in))
	for i := range in {
		out = append(out, toAppointmentResponse(&in[i]))
	}
	return out
}

type OutreachResponse struct {
	WhatsAppLink string `json:"whatsapp_link"`
	DialLink     string `json:"dial_link"`
}

type StageClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Password string `json:"password"`
}

type StagedClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Age       int       `json:"age"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// the staged password never leaves the server
func toStagedClientResponse(c *identity.StagedClient) StagedClientResponse {
	return StagedClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Age:       c.Age,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
	}
}

type TestimonialRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type TestimonialResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toTestimonialResponse(t *testimonial.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Category:  string(t.Category),
		Message:   t.Message,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

type BlogRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

type BlogResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Likes     int       `json:"likes"`
	Shares    int       `json:"shares"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBlogResponse(p *blog.Post) BlogResponse {
	return BlogResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Likes:     p.Likes,
		Shares:    p.Shares,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type BlogCommentRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type BlogCommentResponse struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"blog_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toBlogCommentResponse(c *blog.Comment) BlogCommentResponse {
	return BlogCommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Name:      c.Name,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

type CounterResponse struct {
	Count int `json:"count"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func toContactResponse(c *clinic.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

type TeamMemberRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type TeamMemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Bio      string    `json:"bio,omitempty"`
	ImageURL string    `json:"image_url,omitempty"`
}

func toTeamMemberResponse(m *clinic.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:       m.ID,
		Name:     m.Name,
		Role:     m.Role,
		Bio:      m.Bio,
		ImageURL: m.ImageURL,
	}
}
