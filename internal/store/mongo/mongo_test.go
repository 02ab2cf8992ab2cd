package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"reelfind/internal/domain"
)

const imageBase = "https://image.tmdb.org/t/p/w500"

func TestUpdateSearchCountUpserts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("increments with setOnInsert", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		err := s.UpdateSearchCount(context.Background(), "batman", domain.Movie{ID: 268, Title: "Batman", PosterPath: "/bat.jpg"})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "update", started.CommandName)

		updates, ok := started.Command.Lookup("updates").ArrayOK()
		require.True(mt, ok)
		values, err := updates.Values()
		require.NoError(mt, err)
		require.Len(mt, values, 1)

		stmt := values[0].Document()
		require.Equal(mt, "batman", stmt.Lookup("q", "searchTerm").StringValue())
		require.True(mt, stmt.Lookup("upsert").Boolean())
		require.EqualValues(mt, 1, stmt.Lookup("u", "$inc", "count").AsInt64())
		require.EqualValues(mt, 268, stmt.Lookup("u", "$setOnInsert", "movie_id").AsInt64())
		require.Equal(mt, "Batman", stmt.Lookup("u", "$setOnInsert", "title").StringValue())
		require.Equal(mt, imageBase+"/bat.jpg", stmt.Lookup("u", "$setOnInsert", "poster_url").StringValue())
		require.NotEmpty(mt, stmt.Lookup("u", "$setOnInsert", "_id").StringValue())
	})

	mt.Run("duplicate key on concurrent insert is retried", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: reelfind.searches index: searchTerm_1",
			}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		err := s.UpdateSearchCount(context.Background(), "batman", domain.Movie{ID: 268})
		require.NoError(mt, err)

		require.Equal(mt, "update", mt.GetStartedEvent().CommandName)
		require.Equal(mt, "update", mt.GetStartedEvent().CommandName)
	})

	mt.Run("duplicate key twice is returned", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		dup := mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})
		mt.AddMockResponses(dup, dup)

		err := s.UpdateSearchCount(context.Background(), "batman", domain.Movie{ID: 268})
		require.Error(mt, err)
		require.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("server error is returned", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad value",
		}))

		err := s.UpdateSearchCount(context.Background(), "batman", domain.Movie{ID: 1})
		require.Error(mt, err)
		require.Contains(mt, err.Error(), `"batman"`)
	})
}

func TestTrendingMovies(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes sorted documents", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "a1"},
				{Key: "searchTerm", Value: "heat"},
				{Key: "count", Value: 3},
				{Key: "movie_id", Value: 949},
				{Key: "title", Value: "Heat"},
				{Key: "poster_url", Value: imageBase + "/heat.jpg"},
				{Key: "createdAt", Value: int64(1)},
			},
			bson.D{
				{Key: "_id", Value: "b2"},
				{Key: "searchTerm", Value: "jaws"},
				{Key: "count", Value: 2},
				{Key: "movie_id", Value: 578},
				{Key: "title", Value: "Jaws"},
				{Key: "poster_url", Value: ""},
				{Key: "createdAt", Value: int64(2)},
			},
		))

		got, err := s.TrendingMovies(context.Background(), 5)
		require.NoError(mt, err)
		require.Equal(mt, []domain.TrendingEntry{
			{ID: "a1", SearchTerm: "heat", Count: 3, MovieID: 949, Title: "Heat", PosterURL: imageBase + "/heat.jpg"},
			{ID: "b2", SearchTerm: "jaws", Count: 2, MovieID: 578, Title: "Jaws"},
		}, got)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "find", started.CommandName)
		require.EqualValues(mt, 5, started.Command.Lookup("limit").AsInt64())
		require.EqualValues(mt, -1, started.Command.Lookup("sort", "count").AsInt64())
	})

	mt.Run("find error is returned", func(mt *mtest.T) {
		s := New(mt.Client, mt.DB.Name(), mt.Coll.Name(), imageBase)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := s.TrendingMovies(context.Background(), 5)
		require.Error(mt, err)
	})
}
