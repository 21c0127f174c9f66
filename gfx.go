/*
Package gfx is a library for processing raster images in the Portable
PixMap format and maintaining a catalogue of scanned images and their
thumbnails.
*/
package gfx

import "log"

type Library struct {
	db     *ImageDB
	logger *log.Logger
}

func New(db *ImageDB, logger *log.Logger) *Library {
	return &Library{
		db:     db,
		logger: logger,
	}
}
