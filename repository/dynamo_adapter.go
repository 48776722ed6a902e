package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Atlas00000/productvisualizer/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoAdapter.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoAdapter is a DynamoDB-backed ProductRepo. Items are keyed by
// `product_id`, which holds the same hex ObjectID the Mongo store uses, so ids
// stay valid when switching drivers.
type DynamoAdapter struct {
	client DynamoAPI
	table  string
}

func NewDynamoAdapter(client DynamoAPI, table string) *DynamoAdapter {
	return &DynamoAdapter{client: client, table: table}
}

type ddbProduct struct {
	ProductID   string      `dynamodbav:"product_id"`
	Name        string      `dynamodbav:"name"`
	Description string      `dynamodbav:"description"`
	BasePrice   float64     `dynamodbav:"base_price"`
	ModelURL    string      `dynamodbav:"model_url"`
	Colors      []ddbOption `dynamodbav:"colors,omitempty"`
	Materials   []ddbOption `dynamodbav:"materials,omitempty"`
	Components  []ddbOption `dynamodbav:"components,omitempty"`
	IsActive    bool        `dynamodbav:"is_active"`
	CreatedAt   string      `dynamodbav:"created_at"`
	UpdatedAt   string      `dynamodbav:"updated_at"`
}

// ddbOption flattens the three option kinds; Asset is the hex, texture or model url.
type ddbOption struct {
	Name  string  `dynamodbav:"name"`
	Asset string  `dynamodbav:"asset,omitempty"`
	Price float64 `dynamodbav:"price"`
}

func toDDB(p *models.Product) ddbProduct {
	dp := ddbProduct{
		ProductID:   p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		ModelURL:    p.ModelURL,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	dp.Colors = colorsToDDB(p.CustomizationOptions.Colors)
	dp.Materials = materialsToDDB(p.CustomizationOptions.Materials)
	dp.Components = componentsToDDB(p.CustomizationOptions.Components)
	return dp
}

func colorsToDDB(colors []models.ColorOption) []ddbOption {
	out := make([]ddbOption, 0, len(colors))
	for _, c := range colors {
		out = append(out, ddbOption{Name: c.Name, Asset: c.Hex, Price: c.Price})
	}
	return out
}

func materialsToDDB(materials []models.MaterialOption) []ddbOption {
	out := make([]ddbOption, 0, len(materials))
	for _, m := range materials {
		out = append(out, ddbOption{Name: m.Name, Asset: m.TextureURL, Price: m.Price})
	}
	return out
}

func componentsToDDB(components []models.ComponentOption) []ddbOption {
	out := make([]ddbOption, 0, len(components))
	for _, c := range components {
		out = append(out, ddbOption{Name: c.Name, Asset: c.ModelURL, Price: c.Price})
	}
	return out
}

func fromDDB(dp ddbProduct) models.Product {
	p := models.Product{
		Name:        dp.Name,
		Description: dp.Description,
		BasePrice:   dp.BasePrice,
		ModelURL:    dp.ModelURL,
		IsActive:    dp.IsActive,
		CustomizationOptions: models.CustomizationOptions{
			Colors:     []models.ColorOption{},
			Materials:  []models.MaterialOption{},
			Components: []models.ComponentOption{},
		},
	}
	p.ID, _ = primitive.ObjectIDFromHex(dp.ProductID)
	if t, err := time.Parse(time.RFC3339Nano, dp.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, dp.UpdatedAt); err == nil {
		p.UpdatedAt = t
	}
	for _, o := range dp.Colors {
		p.CustomizationOptions.Colors = append(p.CustomizationOptions.Colors, models.ColorOption{Name: o.Name, Hex: o.Asset, Price: o.Price})
	}
	for _, o := range dp.Materials {
		p.CustomizationOptions.Materials = append(p.CustomizationOptions.Materials, models.MaterialOption{Name: o.Name, TextureURL: o.Asset, Price: o.Price})
	}
	for _, o := range dp.Components {
		p.CustomizationOptions.Components = append(p.CustomizationOptions.Components, models.ComponentOption{Name: o.Name, ModelURL: o.Asset, Price: o.Price})
	}
	return p
}

func (d *DynamoAdapter) key(id primitive.ObjectID) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"product_id": id.Hex()})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	return key, nil
}

func (d *DynamoAdapter) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	key, err := d.key(id)
	if err != nil {
		return nil, err
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &d.table, Key: key, ConsistentRead: aws.Bool(true)})
	if err != nil {
		return nil, storeError("dynamodb GetItem failed", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var dp ddbProduct
	if err := attributevalue.UnmarshalMap(out.Item, &dp); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	p := fromDDB(dp)
	return &p, nil
}

// FindActive scans the table filtering on is_active.
func (d *DynamoAdapter) FindActive(ctx context.Context) ([]models.Product, error) {
	filter := "is_active = :active"
	values, err := attributevalue.MarshalMap(map[string]bool{":active": true})
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	input := &dynamodb.ScanInput{
		TableName:                 &d.table,
		FilterExpression:          &filter,
		ExpressionAttributeValues: values,
	}
	products := []models.Product{}
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("scan page failed", err)
		}
		for _, it := range page.Items {
			var dp ddbProduct
			if err := attributevalue.UnmarshalMap(it, &dp); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			products = append(products, fromDDB(dp))
		}
	}
	return products, nil
}

func (d *DynamoAdapter) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	item, err := attributevalue.MarshalMap(toDDB(product))
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	cond := "attribute_not_exists(product_id)"
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item, ConditionExpression: &cond})
	if err != nil {
		return storeError("dynamodb PutItem failed", err)
	}
	return nil
}

// CreateMany uses BatchWriteItem (chunks of 25)
func (d *DynamoAdapter) CreateMany(ctx context.Context, products []models.Product) error {
	reqs := make([]types.WriteRequest, 0, len(products))
	for i := range products {
		if products[i].ID.IsZero() {
			products[i].ID = primitive.NewObjectID()
		}
		item, err := attributevalue.MarshalMap(toDDB(&products[i]))
		if err != nil {
			return fmt.Errorf("marshal batch item: %w", err)
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}
	return d.batchWrite(ctx, reqs)
}

// Update writes only the attributes present in patch, in a single
// conditional UpdateItem, and returns the item as stored afterwards.
func (d *DynamoAdapter) Update(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*models.Product, error) {
	key, err := d.key(id)
	if err != nil {
		return nil, err
	}

	type assignment struct {
		attr  string
		value interface{}
	}
	var sets []assignment
	if patch.Name != nil {
		sets = append(sets, assignment{"name", *patch.Name})
	}
	if patch.Description != nil {
		sets = append(sets, assignment{"description", *patch.Description})
	}
	if patch.BasePrice != nil {
		sets = append(sets, assignment{"base_price", *patch.BasePrice})
	}
	if patch.ModelURL != nil {
		sets = append(sets, assignment{"model_url", *patch.ModelURL})
	}
	if patch.IsActive != nil {
		sets = append(sets, assignment{"is_active", *patch.IsActive})
	}
	if patch.Colors != nil {
		sets = append(sets, assignment{"colors", colorsToDDB(*patch.Colors)})
	}
	if patch.Materials != nil {
		sets = append(sets, assignment{"materials", materialsToDDB(*patch.Materials)})
	}
	if patch.Components != nil {
		sets = append(sets, assignment{"components", componentsToDDB(*patch.Components)})
	}
	sets = append(sets, assignment{"updated_at", patch.UpdatedAt.UTC().Format(time.RFC3339Nano)})

	// "name" is a reserved word, so every attribute goes through a placeholder.
	names := make(map[string]string, len(sets))
	raw := make(map[string]interface{}, len(sets))
	clauses := make([]string, 0, len(sets))
	for _, a := range sets {
		names["#"+a.attr] = a.attr
		raw[":"+a.attr] = a.value
		clauses = append(clauses, "#"+a.attr+" = :"+a.attr)
	}
	values, err := attributevalue.MarshalMap(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal update values: %w", err)
	}

	expr := "SET " + strings.Join(clauses, ", ")
	cond := "attribute_exists(product_id)"
	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &d.table,
		Key:                       key,
		UpdateExpression:          &expr,
		ConditionExpression:       &cond,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionFailed(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("dynamodb UpdateItem failed", err)
	}

	var dp ddbProduct
	if err := attributevalue.UnmarshalMap(out.Attributes, &dp); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	p := fromDDB(dp)
	return &p, nil
}

func (d *DynamoAdapter) SetActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	key, err := d.key(id)
	if err != nil {
		return err
	}
	expr := "SET is_active = :active, updated_at = :updated"
	cond := "attribute_exists(product_id)"
	values, err := attributevalue.MarshalMap(map[string]interface{}{
		":active":  active,
		":updated": at.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal update values: %w", err)
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &d.table,
		Key:                       key,
		UpdateExpression:          &expr,
		ConditionExpression:       &cond,
		ExpressionAttributeValues: values,
	})
	if isConditionFailed(err) {
		return ErrNotFound
	}
	if err != nil {
		return storeError("update item failed", err)
	}
	return nil
}

func (d *DynamoAdapter) DeleteAll(ctx context.Context) (int64, error) {
	projection := "product_id"
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{TableName: &d.table, ProjectionExpression: &projection})
	var reqs []types.WriteRequest
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, storeError("scan page failed", err)
		}
		for _, it := range page.Items {
			reqs = append(reqs, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: it}})
		}
	}
	if err := d.batchWrite(ctx, reqs); err != nil {
		return 0, err
	}
	return int64(len(reqs)), nil
}

func (d *DynamoAdapter) Stats(ctx context.Context) (Stats, error) {
	total, err := d.count(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	filter := "is_active = :active"
	active, err := d.count(ctx, &filter)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalProducts: total, ActiveProducts: active}, nil
}

func (d *DynamoAdapter) count(ctx context.Context, filter *string) (int64, error) {
	input := &dynamodb.ScanInput{TableName: &d.table, Select: types.SelectCount}
	if filter != nil {
		values, err := attributevalue.MarshalMap(map[string]bool{":active": true})
		if err != nil {
			return 0, fmt.Errorf("marshal filter: %w", err)
		}
		input.FilterExpression = filter
		input.ExpressionAttributeValues = values
	}
	paginator := dynamodb.NewScanPaginator(d.client, input)
	var total int64
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, storeError("scan count failed", err)
		}
		total += int64(page.Count)
	}
	return total, nil
}

func (d *DynamoAdapter) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &d.table})
	if err != nil {
		return storeError("describe table "+d.table, err)
	}
	return nil
}

// batchWrite sends requests in chunks of 25, retrying unprocessed items.
func (d *DynamoAdapter) batchWrite(ctx context.Context, reqs []types.WriteRequest) error {
	const chunkSize = 25
	for i := 0; i < len(reqs); i += chunkSize {
		end := i + chunkSize
		if end > len(reqs) {
			end = len(reqs)
		}
		req := &dynamodb.BatchWriteItemInput{RequestItems: map[string][]types.WriteRequest{d.table: reqs[i:end]}}
		attempts := 0
		for {
			out, err := d.client.BatchWriteItem(ctx, req)
			if err != nil {
				return storeError("batch write failed", err)
			}
			unp, ok := out.UnprocessedItems[d.table]
			if !ok || len(unp) == 0 {
				break
			}
			req.RequestItems[d.table] = unp
			attempts++
			if attempts >= 3 {
				return errors.New("batch write had unprocessed items after retries")
			}
			time.Sleep(time.Duration(attempts*300) * time.Millisecond)
		}
	}
	return nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return err != nil && errors.As(err, &ccf)
}
