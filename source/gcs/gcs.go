// Package gcs reads objects stored in Google Cloud Storage.
package gcs
