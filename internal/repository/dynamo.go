package repository

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"heladeria/internal/domain"
)

// DynamoProducts репозиторий товаров поверх таблицы DynamoDB
type DynamoProducts struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoProducts(client *dynamodb.Client, table string) *DynamoProducts {
	return &DynamoProducts{client: client, table: table}
}

var _ ProductRepository = (*DynamoProducts)(nil)

func (d *DynamoProducts) Create(ctx context.Context, p *domain.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return err
}

func (d *DynamoProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       stringKey(id),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var p domain.Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DynamoProducts) Update(ctx context.Context, p *domain.Product) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	return mapConditionFailed(err)
}

func (d *DynamoProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	items, err := scanAll(ctx, d.client, d.table)
	if err != nil {
		return nil, err
	}
	var all []domain.Product
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

// DynamoOrders репозиторий заказов поверх таблицы DynamoDB
type DynamoOrders struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoOrders(client *dynamodb.Client, table string) *DynamoOrders {
	return &DynamoOrders{client: client, table: table}
}

var _ OrderRepository = (*DynamoOrders)(nil)

func (d *DynamoOrders) Create(ctx context.Context, o *domain.Order) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return err
}

func (d *DynamoOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       stringKey(id),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var o domain.Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (d *DynamoOrders) Update(ctx context.Context, o *domain.Order) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	return mapConditionFailed(err)
}

func (d *DynamoOrders) List(ctx context.Context) ([]domain.Order, error) {
	items, err := scanAll(ctx, d.client, d.table)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// scanAll вычитывает таблицу целиком, следуя за LastEvaluatedKey
func scanAll(ctx context.Context, client *dynamodb.Client, table string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func mapConditionFailed(err error) error {
	var cond *types.ConditionalCheckFailedException
	if errors.As(err, &cond) {
		return ErrNotFound
	}
	return err
}
