// Package config provides configuration structures and utilities for
// stationwatch. It defines the run options populated from CLI flags and
// loads the network definitions (map page URLs and station baselines)
// from the yaml configuration file.
package config
