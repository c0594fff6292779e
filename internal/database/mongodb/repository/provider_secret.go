package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"voxrelay/config"
	"voxrelay/internal/core"
	client "voxrelay/internal/database/client"
	"voxrelay/internal/database/mongodb/model"
	"voxrelay/internal/dto"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMongoDisabled = errors.New("mongo storage is not enabled")

type ProviderSecretRepository struct {
	collection *mongo.Collection
	provider   core.ProviderName
}

func NewProviderSecretRepository(config *config.Configuration, mongoClient *client.MongoClient) *ProviderSecretRepository {
	repository := &ProviderSecretRepository{provider: core.ProviderOpenAI}
	if mongoClient == nil || mongoClient.Client() == nil {
		return repository
	}
	database := string(core.MongoDBVoxrelay)
	if config.Storage.Database != "" {
		database = config.Storage.Database
	}
	repository.collection = mongoClient.Client().Database(database).Collection(string(core.MongoCollectionProviderSecrets))
	return repository
}

// Read 找不到文件時回傳 nil, nil
func (repository *ProviderSecretRepository) Read(contextValue context.Context) (*dto.StoredSecret, error) {
	if repository.collection == nil {
		return nil, ErrMongoDisabled
	}
	var secret model.ProviderSecret
	findError := repository.collection.FindOne(contextValue, bson.M{"_id": string(repository.provider)}).Decode(&secret)
	if errors.Is(findError, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if findError != nil {
		return nil, findError
	}
	apiKey := strings.TrimSpace(secret.APIKey)
	if apiKey == "" {
		return nil, nil
	}
	return &dto.StoredSecret{APIKey: apiKey, UpdatedAt: secret.UpdatedAt.UTC()}, nil
}

// Write upsert 單一文件，replace 為原子操作
func (repository *ProviderSecretRepository) Write(contextValue context.Context, apiKey string) (*dto.StoredSecret, error) {
	if repository.collection == nil {
		return nil, ErrMongoDisabled
	}
	secret := model.ProviderSecret{
		ID:        string(repository.provider),
		APIKey:    apiKey,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	_, replaceError := repository.collection.ReplaceOne(
		contextValue,
		bson.M{"_id": secret.ID},
		secret,
		options.Replace().SetUpsert(true),
	)
	if replaceError != nil {
		return nil, replaceError
	}
	return &dto.StoredSecret{APIKey: secret.APIKey, UpdatedAt: secret.UpdatedAt}, nil
}

func (repository *ProviderSecretRepository) Clear(contextValue context.Context) error {
	if repository.collection == nil {
		return ErrMongoDisabled
	}
	_, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": string(repository.provider)})
	return deleteError
}
