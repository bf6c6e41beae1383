package project

import "errors"

var ErrSlugTaken = errors.New("project slug already exists")
