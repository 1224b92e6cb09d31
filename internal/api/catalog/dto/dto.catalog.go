// Package dto - DTO cho domain catalog.
package dto

// MembershipPlanCreateInput dữ liệu tạo gói tập mới.
type MembershipPlanCreateInput struct {
	Name           string  `json:"name" validate:"required,no_xss"`
	Description    string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price          float64 `json:"price" validate:"gte=0"`
	DurationInDays int     `json:"durationInDays" validate:"required,gt=0"`
	IsActive       bool    `json:"isActive"`
}

// MembershipPlanUpdateInput dữ liệu cập nhật gói tập. Chỉ field non-zero được ghi.
type MembershipPlanUpdateInput struct {
	Name           string  `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description    string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price          float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationInDays int     `json:"durationInDays,omitempty" validate:"omitempty,gt=0"`
	IsActive       bool    `json:"isActive,omitempty"`
}

// ProductCreateInput dữ liệu tạo sản phẩm mới.
type ProductCreateInput struct {
	Name        string  `json:"name" validate:"required,no_xss"`
	Description string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category,omitempty" validate:"omitempty,oneof=apparel supplement accessory"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    bool    `json:"isActive"`
}

// ProductUpdateInput dữ liệu cập nhật sản phẩm.
type ProductUpdateInput struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    string  `json:"category,omitempty" validate:"omitempty,oneof=apparel supplement accessory"`
	Stock       int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	ImageURL    string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    bool    `json:"isActive,omitempty"`
}

// CoachCreateInput dữ liệu tạo HLV mới.
type CoachCreateInput struct {
	Name        string   `json:"name" validate:"required,no_xss"`
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string   `json:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Bio         string   `json:"bio,omitempty" validate:"omitempty,no_xss"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    bool     `json:"isActive"`
}

// CoachUpdateInput dữ liệu cập nhật HLV.
type CoachUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,no_xss"`
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string   `json:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Bio         string   `json:"bio,omitempty" validate:"omitempty,no_xss"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    bool     `json:"isActive,omitempty"`
}

// GymClassCreateInput dữ liệu tạo lớp tập mới.
// CoachID là string từ client, transform sang ObjectID (validate tồn tại trong coaches).
type GymClassCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	CoachID     string `json:"coachId,omitempty" validate:"omitempty,exists=coaches" transform:"str2objectid"`
	Schedule    string `json:"schedule,omitempty" validate:"omitempty,no_xss"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	IsActive    bool   `json:"isActive"`
}

// GymClassUpdateInput dữ liệu cập nhật lớp tập.
type GymClassUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	CoachID     string `json:"coachId,omitempty" validate:"omitempty,exists=coaches" transform:"str2objectid"`
	Schedule    string `json:"schedule,omitempty" validate:"omitempty,no_xss"`
	Capacity    int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	IsActive    bool   `json:"isActive,omitempty"`
}
