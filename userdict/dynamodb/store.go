// Package dynamodb persists user and learned dictionary entries in a DynamoDB
// table.
//
// Entries are loaded once into a userdict.Memory that the engine queries;
// writes go through to the table.
//
// Table schema:
//   - Partition key: reading (string)
//   - Sort key: surface (string)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name henkan-learned \
//	  --attribute-definitions AttributeName=reading,AttributeType=S AttributeName=surface,AttributeType=S \
//	  --key-schema AttributeName=reading,KeyType=HASH AttributeName=surface,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/henkan/candidate"
	"github.com/hupe1980/henkan/userdict"
)

// Client is the subset of the DynamoDB API the store uses.
type Client interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ErrInvalidItem is returned when a table item lacks required attributes.
var ErrInvalidItem = errors.New("dynamodb: invalid dictionary item")

// Store reads and writes dictionary entries.
type Store struct {
	client Client
	table  string
	mem    *userdict.Memory

	learnMu sync.Mutex
}

// NewStore creates a store over table. Call Load before querying.
func NewStore(client Client, table string) *Store {
	return &Store{
		client: client,
		table:  table,
		mem:    userdict.NewMemory(),
	}
}

// Memory returns the in-memory view the engine should query.
func (s *Store) Memory() *userdict.Memory { return s.mem }

// Lookup implements userdict.Repository.
func (s *Store) Lookup(reading string) []userdict.Entry { return s.mem.Lookup(reading) }

// Predict implements userdict.Predictor.
func (s *Store) Predict(prefix string, limit int) []userdict.Entry {
	return s.mem.Predict(prefix, limit)
}

// Load scans the table into memory and returns the number of entries read.
func (s *Store) Load(ctx context.Context) (int, error) {
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	n := 0
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return n, fmt.Errorf("failed to scan DynamoDB: %w", err)
		}
		for _, item := range page.Items {
			e, err := decodeItem(item)
			if err != nil {
				return n, err
			}
			s.mem.Add(e)
			n++
		}
	}
	return n, nil
}

// Put writes e to the table and memory.
func (s *Store) Put(ctx context.Context, e userdict.Entry) error {
	e.Reading = userdict.NormalizeReading(e.Reading)
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      encodeItem(e),
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	s.mem.Add(e)
	return nil
}

// Learn records a committed candidate. The adjusted entry reaches memory
// only after the table accepted it.
func (s *Store) Learn(ctx context.Context, reading string, c candidate.Candidate) (userdict.Entry, error) {
	s.learnMu.Lock()
	defer s.learnMu.Unlock()

	e := s.mem.Learned(reading, c)
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      encodeItem(e),
	})
	if err != nil {
		return e, fmt.Errorf("failed to persist learned entry: %w", err)
	}
	s.mem.Add(e)
	return e, nil
}

// Delete removes an entry from the table and memory.
func (s *Store) Delete(ctx context.Context, reading, surface string) error {
	reading = userdict.NormalizeReading(reading)
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"reading": &types.AttributeValueMemberS{Value: reading},
			"surface": &types.AttributeValueMemberS{Value: surface},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.mem.Remove(reading, surface)
	return nil
}

func encodeItem(e userdict.Entry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"reading":  &types.AttributeValueMemberS{Value: e.Reading},
		"surface":  &types.AttributeValueMemberS{Value: e.Surface},
		"left_id":  &types.AttributeValueMemberN{Value: strconv.Itoa(int(e.LeftID))},
		"right_id": &types.AttributeValueMemberN{Value: strconv.Itoa(int(e.RightID))},
		"cost":     &types.AttributeValueMemberN{Value: strconv.Itoa(int(e.Cost))},
		"kind":     &types.AttributeValueMemberN{Value: strconv.Itoa(int(e.Kind))},
	}
}

func decodeItem(item map[string]types.AttributeValue) (userdict.Entry, error) {
	reading, ok := item["reading"].(*types.AttributeValueMemberS)
	if !ok {
		return userdict.Entry{}, fmt.Errorf("%w: missing reading", ErrInvalidItem)
	}
	surface, ok := item["surface"].(*types.AttributeValueMemberS)
	if !ok {
		return userdict.Entry{}, fmt.Errorf("%w: missing surface", ErrInvalidItem)
	}

	e := userdict.Entry{Reading: reading.Value, Surface: surface.Value}
	fields := []struct {
		name string
		dst  *int16
	}{
		{"left_id", &e.LeftID},
		{"right_id", &e.RightID},
		{"cost", &e.Cost},
	}
	for _, f := range fields {
		v, err := numberAttr(item, f.name)
		if err != nil {
			return userdict.Entry{}, err
		}
		*f.dst = int16(v)
	}
	kind, err := numberAttr(item, "kind")
	if err != nil {
		return userdict.Entry{}, err
	}
	e.Kind = userdict.Kind(kind)
	return e, nil
}

// numberAttr parses a numeric attribute. Missing attributes read as 0.
func numberAttr(item map[string]types.AttributeValue, name string) (int64, error) {
	attr, ok := item[name]
	if !ok {
		return 0, nil
	}
	n, ok := attr.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidItem, name)
	}
	v, err := strconv.ParseInt(n.Value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidItem, name, err)
	}
	return v, nil
}
