package diagnosis

// Fixed heuristic word tables used by the dimension scorers. They are
// package-level so tests can exercise them directly and so they can be
// externalized later without touching scorer logic.

// emotionWords trigger the click-rate emotional-hook bonus.
var emotionWords = []string{"绝", "必", "神", "yyds", "封神", "绝了"}

// greetingPrefixes are the openings that pull readers in.
var greetingPrefixes = []string{"姐妹们", "家人们", "宝子们", "哈喽"}

// hookWords signal concrete, save-worthy content in the body.
var hookWords = []string{"秘密", "秘诀", "技巧", "方法", "攻略", "必看"}

// ctaWords are explicit calls to action.
var ctaWords = []string{"点赞", "收藏", "关注", "评论", "转发", "私信"}

// trustWords are first-hand trust endorsements.
var trustWords = []string{"亲测", "真实", "实测", "自用", "回购", "推荐"}

// benefitWords promise the reader something for free.
var benefitWords = []string{"送", "福利", "免费", "分享", "整理"}

// urgencyWords create time pressure.
var urgencyWords = []string{"限时", "快", "赶紧", "马上", "立即"}

// compliancePenalties is the per-hit score deduction for each
// sensitive-word category.
var compliancePenalties = map[string]int{
	"extreme_words":       10,
	"medical_claims":      15,
	"false_promises":      10,
	"platform_violations": 20,
}
