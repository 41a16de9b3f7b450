package services

import "github.com/google/uuid"

var newID = uuid.NewString
