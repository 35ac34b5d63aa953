package handlers

import "github.com/czhengjuarez/FireDrill/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Session = models.Session
type Project = models.Project
type CustomRole = models.CustomRole
