package query

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain"
)

const (
	queryMaxTime = 20 * time.Second
	slowLogAfter = 500 * time.Millisecond
	// concurrent transactions per process
	maxTransactions = 10
)

var (
	timeNow = time.Now
	met     = metrics.New("mongo")
)

type impl struct {
	client     *mongoclient.Client
	checkIndex bool
	tokens     chan struct{}
}

// New wraps client. With checkIndex every read is explained first and
// refused with ErrCollScan if it would scan the collection, transactions
// are then run without a session since explain is not allowed inside one.
func New(client *mongoclient.Client, checkIndex bool) Mongo {
	return &impl{
		client:     client,
		checkIndex: checkIndex,
		tokens:     make(chan struct{}, maxTransactions),
	}
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

// op is one call to mongo
type op struct {
	c      ctx.Ctx
	table  domain.Table
	action string
	start  time.Time
	ender  metrics.Ender
	query  interface{}
}

func (im *impl) begin(c ctx.Ctx, table domain.Table, action string, query interface{}) *op {
	return &op{
		c:      ctx.WithValues(c, map[string]interface{}{"table": table, "action": action}),
		table:  table,
		action: action,
		start:  timeNow(),
		ender:  met.BumpTime("time", "func", action, "table", string(table)),
		query:  query,
	}
}

// end records the timing and logs the call if it was slow
func (o *op) end() {
	o.ender.End()
	if elapsed := time.Since(o.start); elapsed >= slowLogAfter {
		met.BumpSum("slowlog", 1, "table", string(o.table), "action", o.action)
		o.c.WithFields(log.Fields{
			"durationMs": elapsed.Milliseconds(),
			"query":      o.query,
		}).Warn("mongo slowlog")
	}
}

func (o *op) fail(msg string, err error) error {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1)
	}
	o.c.WithFields(log.Fields{"err": err, "query": o.query}).Error(msg)
	return err
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, doc interface{}) error {
	o := im.begin(c, table, "insert", nil)
	defer o.end()

	if _, err := im.coll(table).InsertOne(o.c, doc); mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	} else if err != nil {
		return o.fail("InsertOne failed", err)
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, selector, result interface{}) error {
	o := im.begin(c, table, "findone", selector)
	defer o.end()

	if err := im.explain(o, "find", "filter"); err != nil {
		return err
	}

	err := im.coll(table).FindOne(o.c, selector, options.FindOne().SetMaxTime(queryMaxTime)).Decode(result)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		return o.fail("FindOne failed", err)
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	o := im.begin(c, table, "count", selector)
	defer o.end()

	if err := im.explain(o, "count", "query"); err != nil {
		return 0, err
	}

	n, err := im.coll(table).CountDocuments(o.c, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		return 0, o.fail("CountDocuments failed", err)
	}
	return int(n), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, doc interface{}) error {
	o := im.begin(c, table, "upsert", selector)
	defer o.end()

	if _, err := im.coll(table).ReplaceOne(o.c, selector, doc, options.Replace().SetUpsert(true)); err != nil {
		return o.fail("ReplaceOne failed", err)
	}
	return nil
}

func sortOption(fields ...string) bson.D {
	res := bson.D{}
	for _, f := range fields {
		switch {
		case f == "":
		case f[0] == '-':
			res = append(res, bson.E{Key: f[1:], Value: -1})
		default:
			res = append(res, bson.E{Key: f, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, selector, results interface{}) error {
	o := im.begin(c, table, "search", selector)
	defer o.end()

	if err := im.explain(o, "find", "filter"); err != nil {
		return err
	}

	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if s := sortOption(sortFields...); len(s) > 0 {
		opts.SetSort(s)
	}

	cursor, err := im.coll(table).Find(o.c, selector, opts)
	if err != nil {
		return o.fail("Find failed", err)
	}
	defer cursor.Close(o.c)

	if err := cursor.All(o.c, results); err != nil {
		return o.fail("cursor.All failed", err)
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	o := im.begin(c, table, "remove", selector)
	defer o.end()

	res, err := im.coll(table).DeleteOne(o.c, selector)
	if err != nil {
		return o.fail("DeleteOne failed", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, table domain.Table, selector, fields interface{}) error {
	return im.update(c, table, "patch", selector, bson.M{"$set": fields}, false)
}

func (im *impl) CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	return im.update(c, table, "custompatch", selector, update, upsert)
}

func (im *impl) update(c ctx.Ctx, table domain.Table, action string, selector, update interface{}, upsert bool) error {
	o := im.begin(c, table, action, selector)
	defer o.end()

	res, err := im.coll(table).UpdateOne(o.c, selector, update, options.Update().SetUpsert(upsert))
	if err != nil {
		return o.fail("UpdateOne failed", err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Increment(c ctx.Ctx, table domain.Table, selector interface{}, fields bson.M, result interface{}) error {
	o := im.begin(c, table, "increment", selector)
	defer o.end()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	if err := im.coll(table).FindOneAndUpdate(o.c, selector, bson.M{"$inc": fields}, opts).Decode(result); err != nil {
		return o.fail("FindOneAndUpdate failed", err)
	}
	return nil
}

func (im *impl) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	select {
	case <-c.Done():
		return c.Err()
	case im.tokens <- struct{}{}:
	}
	defer func() { <-im.tokens }()

	if im.checkIndex {
		return fn(c)
	}

	session, err := im.client.StartSession()
	if err != nil {
		c.WithField("err", err).Error("StartSession failed")
		return err
	}
	defer session.EndSession(c)

	_, err = session.WithTransaction(c, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(ctx.Ctx{Context: sessCtx, Logger: c.Logger})
	})
	return err
}

// explain refuses o when its selector would scan the whole collection
func (im *impl) explain(o *op, command, selectorKey string) error {
	if !im.checkIndex {
		return nil
	}

	var plan bson.M
	err := im.client.Database(im.client.DbName).RunCommand(o.c, bson.D{
		{Key: "explain", Value: bson.D{
			{Key: command, Value: string(o.table)},
			{Key: selectorKey, Value: o.query},
		}},
		{Key: "verbosity", Value: "queryPlanner"},
	}).Decode(&plan)
	if err != nil {
		o.c.WithField("err", err).Warn("explain failed")
		met.BumpSum("explain.err", 1)
		return nil
	}

	// the plan layout differs between server versions, the stage name does not
	if strings.Contains(fmt.Sprintf("%v", plan), "COLLSCAN") {
		o.c.WithField("query", o.query).Warn("COLLSCAN")
		return ErrCollScan
	}
	return nil
}
