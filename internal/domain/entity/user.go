package entity

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleParent  UserRole = "parent"
	RoleTeacher UserRole = "teacher"
)

type User struct {
	ID       string   `json:"id" firestore:"id"`
	Email    string   `json:"email" firestore:"email"`
	Username string   `json:"username" firestore:"username"`
	Role     UserRole `json:"role" firestore:"role"`
	Avatar   string   `json:"avatar,omitempty" firestore:"avatar,omitempty"`

	// ParentID links a student account to the parent that owns it.
	ParentID string `json:"parentId,omitempty" firestore:"parentId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
