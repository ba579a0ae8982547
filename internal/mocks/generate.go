package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Lookup --dir ../domain/namemap --output domain/namemap --outpkg namemapmock --filename lookup_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/namemap --output domain/namemap --outpkg namemapmock --filename repository_mock.go
