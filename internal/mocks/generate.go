// Package mocks contains generated mocks for ports interfaces.
package mocks

//go:generate mockgen -destination=credential_backend_mock.go -package=mocks github.com/timemanager/tm-ui-api/internal/ports CredentialBackend
//go:generate mockgen -destination=session_store_mock.go -package=mocks github.com/timemanager/tm-ui-api/internal/ports SessionStore
