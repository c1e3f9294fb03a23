// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc          *dynamodb.DynamoDB
	db           *dynamo.DB
	rendersTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.rendersTable = ddb.db.Table("truchet-" + stage + "-renders")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) PutRender(render Render) error {
	err := ddb.rendersTable.Put(render).If("attribute_not_exists($)", "name").Run()
	if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
		return ErrExists
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadRender(name string) (render Render, err error) {
	err = ddb.rendersTable.Get("name", name).One(&render)
	if err == dynamo.ErrNotFound {
		err = ErrNotFound
	}
	return
}

func (ddb *DynamoDBDatabase) DeleteRender(name string) error {
	return ddb.rendersTable.Delete("name", name).Run()
}

func (ddb *DynamoDBDatabase) ReadRenders() (renders []Render, err error) {
	query := ddb.rendersTable.Scan().Iter()

	for {
		var render Render
		ok := query.Next(&render)
		if !ok {
			err = query.Err()
			return
		}
		renders = append(renders, render)
	}
}
