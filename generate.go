package gate

//go:generate mockgen --source datastore/repository.go --destination mocks/repository.go -package mocks
//go:generate mockgen --source cache/cache.go --destination mocks/cache.go -package mocks
