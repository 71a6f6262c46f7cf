package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DocumentSource --dir ../usecase --output usecase --outpkg usecasemock --filename document_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DatasetDecoder --dir ../usecase --output usecase --outpkg usecasemock --filename dataset_decoder_mock.go
