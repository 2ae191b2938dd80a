// Package storyboard は分镜の状態管理とフレーム・音声生成の編排を担います。
package storyboard

import (
	"fmt"
	"sync"

	"github.com/shouni/go-promo-studio/pkg/domain"
)

// Store はシーン列の唯一の保管場所です。並行する生成ゴルーチンからの
// 更新をミューテックスで直列化し、外部へはディープコピーしか渡しません。
type Store struct {
	mu     sync.Mutex
	scenes []domain.Scene
}

// NewStore は空のストアを生成します。
func NewStore() *Store {
	return &Store{}
}

// Seed は解析結果のシーン列でストアを丸ごと置き換えます。
// 以前のシーンとアセットはすべて破棄されます。
func (s *Store) Seed(scenes []domain.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes = make([]domain.Scene, len(scenes))
	for i, sc := range scenes {
		s.scenes[i] = sc.Clone()
	}
}

// Scenes は現在のシーン列のディープコピーを返します。
// 返り値をどう変更してもストア内部には影響しません。
func (s *Store) Scenes() []domain.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Scene, len(s.scenes))
	for i, sc := range s.scenes {
		out[i] = sc.Clone()
	}
	return out
}

// Len は保持しているシーン数を返します。
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scenes)
}

// Scene は ID で1シーンのディープコピーを引きます。
func (s *Store) Scene(id string) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.scenes {
		if s.scenes[i].ID == id {
			return s.scenes[i].Clone(), nil
		}
	}
	return domain.Scene{}, fmt.Errorf("シーン %q が見つかりません", id)
}

// SceneAt は並び順 (0始まり) で1シーンのディープコピーを引きます。
func (s *Store) SceneAt(index int) (domain.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.scenes) {
		return domain.Scene{}, fmt.Errorf("シーン番号 %d は範囲外です (全%d件)", index, len(s.scenes))
	}
	return s.scenes[index].Clone(), nil
}

// Update は対象シーンだけに upd の差分を適用します。他のシーンと並び順は
// 一切変わりません。対象が存在しない場合はエラーです。
func (s *Store) Update(id string, upd SceneUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.scenes {
		if s.scenes[i].ID == id {
			upd.apply(&s.scenes[i])
			return nil
		}
	}
	return fmt.Errorf("シーン %q が見つかりません", id)
}
