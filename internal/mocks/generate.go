package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Writer --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename writer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StandingsSource --dir ../domain/mapping --output domain/mapping --outpkg mappingmock --filename standings_source_mock.go
