package main

import "errors"

var (
	errConfigNotFound         = errors.New("config file not found")
	errConfigInvalid          = errors.New("invalid config file")
	errUnsupportedFormat      = errors.New("unsupported output format")
	errUnsupportedCompression = errors.New("unsupported compression")
	errRodataSectionNotFound  = errors.New("no .rodata section found in ELF image")
	errEmptyInput             = errors.New("input file is empty")
)
