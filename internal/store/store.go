// Package store はインメモリのコレクション群と永続化スロットへのミラーリングを提供する。
//
// users、properties、currentUserの3コレクションをメモリ上に保持し、
// 変更操作のたびに対応するスロットへJSONスナップショットを書き込む。
// 書き込み失敗はベストエフォートとしてログに残すのみで、呼び出し側には
// 伝播しない。
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hitoshi/bashachai/internal/model"
	"github.com/hitoshi/bashachai/internal/repository"
)

// Store は3つの永続コレクションとセッションを所有する。
// HTTPサーバーから並行に読まれるためRWMutexで保護する。
type Store struct {
	mu    sync.RWMutex
	slots repository.SlotRepository

	users       []model.User
	properties  []model.Property
	currentUser *model.User
}

// New はStoreを生成する。Loadを呼ぶまでコレクションは空。
func New(slots repository.SlotRepository) *Store {
	return &Store{
		slots:      slots,
		users:      []model.User{},
		properties: []model.Property{},
	}
}

// Load は起動時に3スロットからコレクションを読み込む。
// 存在しないスロットは空コレクション（セッションはなし）として扱う。
// 物件が空の場合は固定のサンプル物件を投入して永続化する。
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := readSlot(ctx, s.slots, repository.SlotUsers, &s.users); err != nil {
		return err
	}
	if s.users == nil {
		s.users = []model.User{}
	}

	if err := readSlot(ctx, s.slots, repository.SlotProperties, &s.properties); err != nil {
		return err
	}
	if s.properties == nil {
		s.properties = []model.Property{}
	}

	var current *model.User
	if err := readSlot(ctx, s.slots, repository.SlotCurrentUser, &current); err != nil {
		return err
	}
	s.currentUser = current

	if len(s.properties) == 0 {
		s.properties = sampleProperties()
		s.saveProperties(ctx)
		slog.Info("seeded sample properties",
			slog.Int("count", len(s.properties)),
		)
	}

	slog.Info("store loaded",
		slog.Int("users", len(s.users)),
		slog.Int("properties", len(s.properties)),
		slog.Bool("session", s.currentUser != nil),
	)

	return nil
}

// readSlot はスロットのJSONスナップショットをvへデコードする。
// スロットが存在しない場合はvを変更しない。
func readSlot(ctx context.Context, slots repository.SlotRepository, name string, v any) error {
	data, err := slots.Read(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load slot %q: %w", name, err)
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode slot %q: %w", name, err)
	}
	return nil
}

// --- ユーザー ---

// Users は全ユーザーのコピーを返す。
func (s *Store) Users(ctx context.Context) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, len(s.users))
	copy(users, s.users)
	return users
}

// FindUserByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (s *Store) FindUserByEmail(ctx context.Context, email string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u
		}
	}
	return nil
}

// AddUser はユーザーを追加してusersスロットを永続化する。
func (s *Store) AddUser(ctx context.Context, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, user)
	s.saveUsers(ctx)
}

// --- 物件 ---

// Properties は全物件のコピーを返す。
func (s *Store) Properties(ctx context.Context) []model.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	props := make([]model.Property, len(s.properties))
	copy(props, s.properties)
	return props
}

// PropertyByID は指定IDの物件を取得する。見つからない場合はnilを返す。
func (s *Store) PropertyByID(ctx context.Context, id int64) *model.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.properties {
		if s.properties[i].ID == id {
			p := s.properties[i]
			return &p
		}
	}
	return nil
}

// AddProperty は物件を追加してpropertiesスロットを永続化する。
func (s *Store) AddProperty(ctx context.Context, property model.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.properties = append(s.properties, property)
	s.saveProperties(ctx)
}

// RemoveProperty は指定IDの物件を削除して永続化する。
// 物件が存在しなかった場合はfalseを返し、コレクションは変更しない。
func (s *Store) RemoveProperty(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties = append(s.properties[:i], s.properties[i+1:]...)
			s.saveProperties(ctx)
			return true
		}
	}
	return false
}

// AppendReview は指定物件にレビューを追記して永続化する。
// 物件が存在しなかった場合はfalseを返す。
func (s *Store) AppendReview(ctx context.Context, propertyID int64, review model.Review) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.properties {
		if s.properties[i].ID == propertyID {
			s.properties[i].Reviews = append(s.properties[i].Reviews, review)
			s.saveProperties(ctx)
			return true
		}
	}
	return false
}

// --- セッション ---

// CurrentUser は現在ログイン中のユーザーのコピーを返す。未ログインの場合はnil。
func (s *Store) CurrentUser(ctx context.Context) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// SetCurrentUser はセッションを設定または解除して永続化する。
// nilを渡すとログアウト（スロット削除）となる。
func (s *Store) SetCurrentUser(ctx context.Context, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.currentUser = nil
		if err := s.slots.Delete(ctx, repository.SlotCurrentUser); err != nil {
			slog.Warn("failed to clear session slot",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	u := *user
	s.currentUser = &u
	s.saveSlot(ctx, repository.SlotCurrentUser, s.currentUser)
}

// --- 永続化ヘルパー ---

// saveUsers はusersスロットを書き込む。呼び出し側でロックを保持していること。
func (s *Store) saveUsers(ctx context.Context) {
	s.saveSlot(ctx, repository.SlotUsers, s.users)
}

// saveProperties はpropertiesスロットを書き込む。呼び出し側でロックを保持していること。
func (s *Store) saveProperties(ctx context.Context) {
	s.saveSlot(ctx, repository.SlotProperties, s.properties)
}

// saveSlot はコレクションをJSONスナップショットとしてスロットへ書き込む。
// 失敗はログに残すのみで伝播しない（ベストエフォート永続化）。
func (s *Store) saveSlot(ctx context.Context, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode slot snapshot",
			slog.String("slot", name),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.slots.Write(ctx, name, data); err != nil {
		slog.Warn("failed to persist slot snapshot",
			slog.String("slot", name),
			slog.String("error", err.Error()),
		)
	}
}
