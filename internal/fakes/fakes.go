// Package fakes holds test doubles shared by the package tests.
package fakes
