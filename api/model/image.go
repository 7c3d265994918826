package model

import "io"

type ResizeRequest struct {
	ImageURL string `query:"imageUrl"`
	Option   string `query:"option"`
}

type ResizeResponse struct {
	Type          string
	ContentLength int64

	Body io.Reader
}
