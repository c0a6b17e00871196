package mocks

//go:generate mockery --name GameWriter --srcpkg github.com/hockey-db/hockey-db/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CheckpointReader --srcpkg github.com/hockey-db/hockey-db/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name PlayerEventReader --srcpkg github.com/hockey-db/hockey-db/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name GameSource --srcpkg github.com/hockey-db/hockey-db/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
//go:generate mockery --name Notifier --srcpkg github.com/hockey-db/hockey-db/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
