// Package schedule hosts the four-step service schedule creator wizard.
package schedule
