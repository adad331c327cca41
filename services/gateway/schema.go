package gateway

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/ghuser/pressroom/pkg/auth"
	"github.com/ghuser/pressroom/pkg/errgql"
	"github.com/ghuser/pressroom/pkg/validator"
	commentmodels "github.com/ghuser/pressroom/services/comment/domain/models"
	postevents "github.com/ghuser/pressroom/services/post/domain/events"
	postmodels "github.com/ghuser/pressroom/services/post/domain/models"
)

type signUpArgs struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type loginArgs struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// buildSchema assembles the full query/mutation schema. Resolvers return
// domain errors classified through errgql so clients get stable error codes.
func (g *Gateway) buildSchema() (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"text":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"postId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"authorId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"author": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					comment, ok := p.Source.(*commentmodels.Comment)
					if !ok {
						return nil, nil
					}
					user, err := g.users.Get(p.Context, comment.AuthorID)
					if err != nil {
						return nil, errgql.Wrap(err)
					}
					return user, nil
				},
			},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"subtitle":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"body":      &graphql.Field{Type: graphql.String},
			"authorId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
			"author": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, ok := p.Source.(*postmodels.Post)
					if !ok {
						return nil, nil
					}
					user, err := g.users.Get(p.Context, post.AuthorID)
					if err != nil {
						return nil, errgql.Wrap(err)
					}
					return user, nil
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewList(commentType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					post, ok := p.Source.(*postmodels.Post)
					if !ok {
						return nil, nil
					}
					comments, err := g.comments.ListForPost(p.Context, post.ID)
					if err != nil {
						return nil, errgql.Wrap(err)
					}
					return comments, nil
				},
			},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	queries := graphql.Fields{
		"getAllPosts": &graphql.Field{
			Type:        graphql.NewList(postType),
			Description: "All posts, newest first. Open to unauthenticated callers.",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				posts, err := g.posts.List(p.Context)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return posts, nil
			},
		},
		"getPostById": &graphql.Field{
			Type: postType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				post, err := g.posts.Get(p.Context, id)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return post, nil
			},
		},
		"getCommentById": &graphql.Field{
			Type: commentType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				comment, err := g.comments.Get(p.Context, id)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return comment, nil
			},
		},
		"getCommentsByPost": &graphql.Field{
			Type: graphql.NewList(commentType),
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				postID, err := uuidArg(p, "postId")
				if err != nil {
					return nil, err
				}
				comments, err := g.comments.ListForPost(p.Context, postID)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return comments, nil
			},
		},
		"me": &graphql.Field{
			Type: userType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				subject, ok := auth.SubjectFromCtx(p.Context)
				if !ok {
					return nil, errgql.Wrap(auth.ErrUnauthorized)
				}
				user, err := g.users.Get(p.Context, subject.ID)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return user, nil
			},
		},
	}

	mutations := graphql.Fields{
		"createPost": &graphql.Field{
			Type: postType,
			Args: graphql.FieldConfigArgument{
				"title":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"subtitle": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"body":     &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				post, err := g.posts.Create(p.Context, stringArg(p, "title"), stringArg(p, "subtitle"), stringArg(p, "body"))
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				g.publishChange(postevents.KindCreated, post.ID, post.Title)
				return post, nil
			},
		},
		"editPost": &graphql.Field{
			Type: postType,
			Args: graphql.FieldConfigArgument{
				"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"title":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"subtitle": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"body":     &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				post, err := g.posts.Update(p.Context, id, stringArg(p, "title"), stringArg(p, "subtitle"), stringArg(p, "body"))
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				g.publishChange(postevents.KindUpdated, post.ID, post.Title)
				return post, nil
			},
		},
		"deletePost": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				if err := g.posts.Delete(p.Context, id); err != nil {
					return nil, errgql.Wrap(err)
				}
				if err := g.comments.DeleteForPost(p.Context, id); err != nil {
					g.log.ErrorContext(p.Context, "delete comments for removed post", "post_id", id, "error", err)
				}
				g.publishChange(postevents.KindDeleted, id, "")
				return true, nil
			},
		},
		"createComment": &graphql.Field{
			Type: commentType,
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"text":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				postID, err := uuidArg(p, "postId")
				if err != nil {
					return nil, err
				}
				if _, err := g.posts.Get(p.Context, postID); err != nil {
					return nil, errgql.Wrap(err)
				}
				comment, err := g.comments.Create(p.Context, postID, stringArg(p, "text"))
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return comment, nil
			},
		},
		"editComment": &graphql.Field{
			Type: commentType,
			Args: graphql.FieldConfigArgument{
				"id":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				comment, err := g.comments.Update(p.Context, id, stringArg(p, "text"))
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return comment, nil
			},
		},
		"deleteComment": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, err := uuidArg(p, "id")
				if err != nil {
					return nil, err
				}
				if err := g.comments.Delete(p.Context, id); err != nil {
					return nil, errgql.Wrap(err)
				}
				return true, nil
			},
		},
		"signUp": &graphql.Field{
			Type: authPayloadType,
			Args: graphql.FieldConfigArgument{
				"name":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"email":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"confirmPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args := signUpArgs{
					Name:            stringArg(p, "name"),
					Email:           stringArg(p, "email"),
					Password:        stringArg(p, "password"),
					ConfirmPassword: stringArg(p, "confirmPassword"),
				}
				if err := validator.Validate(args); err != nil {
					return nil, errgql.New(
						fmt.Errorf("invalid input: %v", validator.FormatValidationErrors(err)),
						errgql.CodeBadUserInput,
					)
				}
				payload, err := g.users.SignUp(p.Context, args.Name, args.Email, args.Password, args.ConfirmPassword)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return payload, nil
			},
		},
		"login": &graphql.Field{
			Type: authPayloadType,
			Args: graphql.FieldConfigArgument{
				"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				args := loginArgs{Email: stringArg(p, "email"), Password: stringArg(p, "password")}
				if err := validator.Validate(args); err != nil {
					return nil, errgql.New(
						fmt.Errorf("invalid input: %v", validator.FormatValidationErrors(err)),
						errgql.CodeBadUserInput,
					)
				}
				payload, err := g.users.Login(p.Context, args.Email, args.Password)
				if err != nil {
					return nil, errgql.Wrap(err)
				}
				return payload, nil
			},
		},
		// Tokens are stateless; logOut exists so clients have a uniform
		// mutation to call when discarding their credential. The email
		// argument is accepted for client symmetry and ignored.
		"logOut": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"email": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return true, nil
			},
		},
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: queries}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutations}),
	})
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func uuidArg(p graphql.ResolveParams, name string) (uuid.UUID, error) {
	s, _ := p.Args[name].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errgql.New(fmt.Errorf("%s must be a valid id", name), errgql.CodeBadUserInput)
	}
	return id, nil
}
